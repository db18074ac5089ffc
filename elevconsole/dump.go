package elevconsole

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"elevsim/common"
)

type dumpDoc struct {
	Draft    common.Configuration   `yaml:"draft"`
	Snapshot common.SimulationState `yaml:"snapshot"`
}

// DumpYAML writes the snapshot together with the current draft configuration.
func DumpYAML(w io.Writer, st *common.SimulationState, draft common.Configuration) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(dumpDoc{Draft: draft, Snapshot: *st}); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
