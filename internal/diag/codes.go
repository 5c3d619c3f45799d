package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Трансляция
	WagInfo                 Code = 1000
	WagUnsupportedConstruct Code = 1001
	WagLegacyRecursion      Code = 1002
	WagMissingBranch        Code = 1003
	WagUnknownOperator      Code = 1004

	// Ошибки I/O и формата графа
	IOLoadFileError Code = 4001
	IOGraphFormat   Code = 4002
	IOCacheError    Code = 4003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
	ObsStats   Code = 6002
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	WagInfo:                 "Translation information",
	WagUnsupportedConstruct: "unsupported signal construct",
	WagLegacyRecursion:      "non-de Bruijn recursive definition",
	WagMissingBranch:        "extended primitive is missing a branch",
	WagUnknownOperator:      "unknown binary operator code",
	IOLoadFileError:         "I/O load file error",
	IOGraphFormat:           "malformed signal graph file",
	IOCacheError:            "translation cache error",
	ObsInfo:                 "Observability information",
	ObsTimings:              "Pipeline timings",
	ObsStats:                "Sharing statistics",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("WAG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
