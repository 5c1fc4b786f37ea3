package report

import (
	"encoding/json"
	"os"

	"strategy-allocator/internal/model"
)

// WriteWeightTable writes the nested market_type -> strategy -> weight
// mapping, pretty-printed. encoding/json emits map keys sorted, so repeated
// runs over unchanged input produce byte-identical files.
func WriteWeightTable(path string, table model.WeightTable) error {
	raw, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}

// ReadWeightTable parses a weight artifact back into the nested mapping.
func ReadWeightTable(path string) (model.WeightTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var table model.WeightTable
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, err
	}
	return table, nil
}
