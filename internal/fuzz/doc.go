// Package fuzztests houses Go fuzz harnesses for the graph loader and the
// translator. Arbitrary bytes are fed to sigfile.Parse; every graph that
// loads is translated and the resulting IR is checked for structural
// invariants, with and without the uninline pass.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
