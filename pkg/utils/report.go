package utils

import (
	"github.com/golang/glog"

	"gomips/pkg/asm"
)

// GlogReporter renders assembler diagnostics through glog. Label bindings
// are logged at verbosity LabelLevel, line errors as errors.
type GlogReporter struct {
	LabelLevel glog.Level
}

func (r GlogReporter) Report(e asm.Event) {
	switch e.Kind {
	case asm.EventLabel:
		glog.V(r.LabelLevel).Info(e.String())
	default:
		glog.Errorf("Error processing line %s", e)
	}
}
