package output

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONPrinter prints results as indented JSON.
type JSONPrinter struct{}

// Print renders v as JSON on stdout.
func (JSONPrinter) Print(v any) error {
	if _, ok := v.(Ack); ok {
		_, err := fmt.Fprintln(os.Stdout, "null")
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
