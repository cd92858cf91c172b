// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neo

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// LayerWeights is a snapshot of all the adapting values of a Layer.
// Matrices are stored row-major.
type LayerWeights struct {
	Layer       string
	NumInputs   int
	NumHidden   int
	NumFeedback int
	FeedForward []float64
	Recurrent   []float64
	Predictive  []float64
	Feedback    []float64
	Bias        []float64
}

// HierarchyWeights is a snapshot of all layer weights in a Hierarchy
type HierarchyWeights struct {
	Hierarchy string
	Layers    []LayerWeights
}

// Weights returns a copy of the layer's weights and biases
func (ly *Layer) Weights() LayerWeights {
	lw := LayerWeights{Layer: ly.Name, NumInputs: ly.NumInputs, NumHidden: ly.NumHidden, NumFeedback: ly.NumFeedback}
	lw.FeedForward = append([]float64(nil), ly.ff.RawMatrix().Data...)
	lw.Recurrent = append([]float64(nil), ly.rec.RawMatrix().Data...)
	lw.Predictive = append([]float64(nil), ly.pred.RawMatrix().Data...)
	lw.Feedback = append([]float64(nil), ly.fb.RawMatrix().Data...)
	lw.Bias = append([]float64(nil), ly.bias.RawVector().Data...)
	return lw
}

// SetWeights sets the layer's weights and biases from lw, and calls InitActs.
// Returns an ErrShape error, without changing anything, if any width or
// length does not match the layer.
func (ly *Layer) SetWeights(lw *LayerWeights) error {
	if err := ly.checkWeights(lw); err != nil {
		return err
	}
	copy(ly.ff.RawMatrix().Data, lw.FeedForward)
	copy(ly.rec.RawMatrix().Data, lw.Recurrent)
	copy(ly.pred.RawMatrix().Data, lw.Predictive)
	copy(ly.fb.RawMatrix().Data, lw.Feedback)
	copy(ly.bias.RawVector().Data, lw.Bias)
	ly.InitActs()
	return nil
}

// checkWeights returns an ErrShape error if any width in lw or length
// of its arrays does not match the layer
func (ly *Layer) checkWeights(lw *LayerWeights) error {
	ctxt := ly.ctxt("SetWeights")
	if lw.NumInputs != ly.NumInputs || lw.NumHidden != ly.NumHidden || lw.NumFeedback != ly.NumFeedback {
		return fmt.Errorf("%s: weights for %d x %d x %d, layer is %d x %d x %d: %w", ctxt, lw.NumInputs, lw.NumHidden, lw.NumFeedback, ly.NumInputs, ly.NumHidden, ly.NumFeedback, ErrShape)
	}
	nh := ly.NumHidden
	lens := []struct {
		nm   string
		n, w int
	}{
		{"FeedForward", len(lw.FeedForward), nh * ly.NumInputs},
		{"Recurrent", len(lw.Recurrent), nh * nh},
		{"Predictive", len(lw.Predictive), ly.NumInputs * nh},
		{"Feedback", len(lw.Feedback), ly.NumInputs * ly.NumFeedback},
		{"Bias", len(lw.Bias), nh},
	}
	for _, l := range lens {
		if err := checkLen(ctxt, l.nm, l.n, l.w); err != nil {
			return err
		}
	}
	return nil
}

// Weights returns a copy of the weights of all layers
func (hi *Hierarchy) Weights() *HierarchyWeights {
	hw := &HierarchyWeights{Hierarchy: hi.Name}
	for _, ly := range hi.Layers {
		hw.Layers = append(hw.Layers, ly.Weights())
	}
	return hw
}

// SetWeights sets the weights of all layers from hw.  The number of layers
// and all shapes are checked before any layer is changed.
func (hi *Hierarchy) SetWeights(hw *HierarchyWeights) error {
	if len(hw.Layers) != len(hi.Layers) {
		return fmt.Errorf("neo.Hierarchy %s SetWeights: %d layers in weights, have %d: %w", hi.Name, len(hw.Layers), len(hi.Layers), ErrShape)
	}
	for l, ly := range hi.Layers {
		if err := ly.checkWeights(&hw.Layers[l]); err != nil {
			return err
		}
	}
	for l, ly := range hi.Layers {
		if err := ly.SetWeights(&hw.Layers[l]); err != nil {
			return err
		}
	}
	return nil
}

// SaveWeightsJSON saves all weights to a JSON-formatted file.
// If filename has .gz extension, then file is gzip compressed.
func (hi *Hierarchy) SaveWeightsJSON(filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	if filepath.Ext(filename) == ".gz" {
		gzw := gzip.NewWriter(fp)
		err = hi.WriteWeightsJSON(gzw)
		if cerr := gzw.Close(); err == nil {
			err = cerr
		}
	} else {
		bw := bufio.NewWriter(fp)
		err = hi.WriteWeightsJSON(bw)
		if ferr := bw.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

// OpenWeightsJSON opens weights from a JSON-formatted file.
// If filename has .gz extension, then file is gzip uncompressed.
func (hi *Hierarchy) OpenWeightsJSON(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	if filepath.Ext(filename) == ".gz" {
		gzr, err := gzip.NewReader(fp)
		if err != nil {
			log.Println(err)
			return err
		}
		defer gzr.Close()
		return hi.ReadWeightsJSON(gzr)
	}
	return hi.ReadWeightsJSON(bufio.NewReader(fp))
}

// WriteWeightsJSON writes all weights to w in indented JSON format
func (hi *Hierarchy) WriteWeightsJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(hi.Weights())
}

// ReadWeightsJSON reads weights in the WriteWeightsJSON format from r and sets them.
func (hi *Hierarchy) ReadWeightsJSON(r io.Reader) error {
	hw := &HierarchyWeights{}
	if err := json.NewDecoder(r).Decode(hw); err != nil {
		return fmt.Errorf("neo.Hierarchy %s ReadWeightsJSON: %w", hi.Name, err)
	}
	if hw.Hierarchy != hi.Name {
		log.Printf("neo.Hierarchy %s ReadWeightsJSON: loading weights saved from: %s\n", hi.Name, hw.Hierarchy)
	}
	return hi.SetWeights(hw)
}

