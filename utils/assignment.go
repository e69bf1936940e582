package utils

import (
	"encoding/json"
	"os"

	"github.com/setanarut/pixperm"
)

type assignmentFile struct {
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Method     string             `json:"method"`
	Assignment pixperm.Assignment `json:"assignment"`
}

// SaveAssignment writes the permutation of r as JSON.
func SaveAssignment(r *pixperm.Result, filename string) error {
	data, err := json.Marshal(assignmentFile{
		Width:      r.Target.W,
		Height:     r.Target.H,
		Method:     r.Method.String(),
		Assignment: r.Assignment,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

// LoadAssignment reads a file written by SaveAssignment and checks that it
// holds a permutation of width*height entries.
func LoadAssignment(filename string) (pixperm.Assignment, int, int, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, 0, 0, err
	}
	var f assignmentFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, 0, 0, pixperm.WrapError(pixperm.CodeInvalidInput, err, "parse %s", filename)
	}
	if len(f.Assignment) != f.Width*f.Height {
		return nil, 0, 0, pixperm.NewError(pixperm.CodeDimensionMismatch,
			"%s: %d entries for %dx%d", filename, len(f.Assignment), f.Width, f.Height)
	}
	if !f.Assignment.IsBijection() {
		return nil, 0, 0, pixperm.NewError(pixperm.CodeInvalidInput, "%s: not a permutation", filename)
	}
	return f.Assignment, f.Width, f.Height, nil
}
