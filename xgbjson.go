// Copyright (C) 2025 Treeloom Authors. All Rights Reserved.

package xgbjson

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/jtree"
	"github.com/treeloom/xgbjson/model"
)

// Load reads an XGBoost JSON model document from r and returns the decoded
// ensemble. The input must contain exactly one model document.
//
// Syntax errors in the input are reported as [*jtree.SyntaxError] with their
// source location. A well-formed document that does not satisfy the model
// schema is reported as [*SchemaError], and a document naming a booster
// other than "gbtree" as an error satisfying errors.Is against
// [ErrUnsupportedBooster]. In every failure case the partially built model
// is discarded.
func Load(r io.Reader) (*model.Model, error) {
	d := newDelegate()
	st := jtree.NewStream(r)
	if err := st.ParseOne(d); err == io.EOF {
		return nil, fmt.Errorf("load model: %w", ErrIncomplete)
	} else if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	// The input must contain exactly one document. The root state rejects
	// any further value, so a nil error cannot occur here.
	if err := st.ParseOne(d); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after model document")
		}
		return nil, fmt.Errorf("load model: %w", err)
	}

	m, err := d.Result()
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return m, nil
}

// LoadBytes decodes an XGBoost JSON model document from an in-memory buffer.
func LoadBytes(data []byte) (*model.Model, error) {
	return Load(bytes.NewReader(data))
}

// LoadFile decodes the XGBoost JSON model document stored in the named file.
func LoadFile(path string) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()
	m, err := Load(bufio.NewReaderSize(f, 1<<16))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
