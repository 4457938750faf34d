package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/theirongolddev/mchallenge/internal/model"

	"gopkg.in/yaml.v3"
)

var (
	// ErrParse means the input is not valid JSON (or YAML).
	ErrParse = errors.New("failed to import JSON")
	// ErrFormat means the input parsed but is not an array of exactly model.DayCount elements.
	ErrFormat = errors.New("imported file must be for a 90-day challenge")
)

// DecodeDays parses a day file. The top-level value must be an array of exactly
// model.DayCount elements. Individual elements are not validated: "done" is read
// with loose truthiness, "amount" is coerced to a number (zero otherwise), and
// "day" is always re-stamped to the slot position.
func DecodeDays(data []byte, format Format) (model.Days, error) {
	var (
		raw any
		err error
	)
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		raw, err = decodeJSON(data)
	}
	if err != nil {
		return model.Days{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	items, ok := raw.([]any)
	if !ok || len(items) != model.DayCount {
		return model.Days{}, ErrFormat
	}

	days := model.NewDays()
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		days[i].Done = model.CoerceBool(fields["done"])
		days[i].Amount = model.CoerceAmount(fields["amount"])
	}
	return days, nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return raw, nil
}

// EncodeDays writes all model.DayCount records. JSON output is indented with two spaces.
func EncodeDays(w io.Writer, days model.Days, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(days[:]); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		data, err := json.MarshalIndent(days, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	}
}

// ImportMessage turns an import error into the text shown to the user.
func ImportMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFormat):
		return "Imported file must be for a 90-day challenge."
	case errors.Is(err, ErrParse):
		return "Failed to import JSON"
	default:
		return err.Error()
	}
}
