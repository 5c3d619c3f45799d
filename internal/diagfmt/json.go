package diagfmt

import (
	"encoding/json"
	"io"

	"wagner/internal/diag"
)

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message string `json:"message"`
	Node    uint32 `json:"node,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	File     string     `json:"file,omitempty"`
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Node     uint32     `json:"node,omitempty"`
	Notes    []NoteJSON `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   bool             `json:"truncated,omitempty"`
}

// FileBag pairs a file with its diagnostics.
type FileBag struct {
	Path string
	Bag  *diag.Bag
}

// BuildJSON collects the diagnostics of every file in order.
func BuildJSON(files []FileBag, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	for _, f := range files {
		if f.Bag == nil {
			continue
		}
		path := displayPath(f.Path, opts.PathMode)
		for _, d := range f.Bag.Items() {
			out.Count++
			if opts.Max > 0 && len(out.Diagnostics) >= opts.Max {
				out.Truncated = true
				continue
			}
			dj := DiagnosticJSON{
				File:     path,
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Title:    d.Code.Title(),
				Message:  d.Message,
				Node:     uint32(d.Node),
			}
			if opts.IncludeNotes {
				for _, n := range d.Notes {
					dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Node: uint32(n.Node)})
				}
			}
			out.Diagnostics = append(out.Diagnostics, dj)
		}
	}
	return out
}

// JSON writes BuildJSON(files, opts) as indented JSON.
func JSON(w io.Writer, files []FileBag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSON(files, opts))
}
