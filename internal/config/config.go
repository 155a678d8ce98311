/*
 * config.go, part of glassbatch.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// Package config handles the glassbatch settings and batch files.
// Settings come from defaults, an optional YAML config file, GLASSBATCH_*
// environment variables and command-line flags, in increasing priority.
// Batch files are YAML documents describing the components of a batch.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	batch "github.com/rmera/glassbatch"
	"github.com/rmera/glassbatch/internal/logging"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of the environment variables read by glassbatch.
const EnvPrefix = "GLASSBATCH"

// Config holds the settings of the command.
type Config struct {
	// Table is the atomic mass table file. Empty means the embedded table.
	Table string `mapstructure:"table"`
	// BatchMass is the desired batch mass, in grams, for batch files that don't give one.
	BatchMass float64 `mapstructure:"batch_mass"`
	// Decimals is the number of decimals shown in tables.
	Decimals int            `mapstructure:"decimals"`
	Log      logging.Config `mapstructure:"log"`
}

// New returns a viper instance with the glassbatch defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("table", "")
	v.SetDefault("batch_mass", 5.0)
	v.SetDefault("decimals", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path, if path is not empty, into v and
// returns the resulting settings.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.BatchMass < 0 {
		return fmt.Errorf("batch_mass must not be negative, got %g", c.BatchMass)
	}
	if c.Decimals < 0 || c.Decimals > 15 {
		return fmt.Errorf("decimals must be between 0 and 15, got %d", c.Decimals)
	}
	return nil
}

// ComponentSpec is one component in a batch file. Product defaults to the
// formula itself and both moles default to 1.
type ComponentSpec struct {
	Formula        string   `yaml:"formula"`
	Fraction       float64  `yaml:"fraction"`
	Product        string   `yaml:"product,omitempty"`
	PrecursorMoles *float64 `yaml:"precursor_moles,omitempty"`
	ProductMoles   *float64 `yaml:"product_moles,omitempty"`
}

// BatchFile is a batch document.
type BatchFile struct {
	DesiredMass *float64          `yaml:"desired_mass,omitempty"`
	Components  []ComponentSpec   `yaml:"components"`
	Conversion  *batch.Conversion `yaml:"conversion,omitempty"`
}

// ParseBatch decodes a batch document.
func ParseBatch(data []byte) (*BatchFile, error) {
	b := new(BatchFile)
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	if len(b.Components) == 0 {
		return nil, errors.New("parsing batch file: no components")
	}
	return b, nil
}

// ReadBatch reads and decodes the batch document in path.
func ReadBatch(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	return ParseBatch(data)
}

func orOne(f *float64) float64 {
	if f == nil {
		return 1
	}
	return *f
}

// State converts the document into a calculation state. defaultMass is used
// if the document has no desired mass, and the default GF calculator if it
// has no conversion. The fractions are normalized. Values the calculation
// can't use (negative fractions, for instance) give an error.
func (b *BatchFile) State(defaultMass float64) (batch.State, error) {
	components := make([]batch.Component, len(b.Components))
	for i, c := range b.Components {
		product := c.Product
		if product == "" {
			product = c.Formula
		}
		components[i] = batch.Component{
			Formula:        c.Formula,
			Fraction:       c.Fraction,
			ProductFormula: product,
			PrecursorMoles: orOne(c.PrecursorMoles),
			ProductMoles:   orOne(c.ProductMoles),
		}
	}
	mass := defaultMass
	if b.DesiredMass != nil {
		mass = *b.DesiredMass
	}
	conv := batch.DefaultState().Conversion
	if b.Conversion != nil {
		conv = *b.Conversion
	}
	S, err := batch.NewState(components, mass, conv)
	if err != nil {
		return batch.State{}, fmt.Errorf("batch file: %w", err)
	}
	return S, nil
}

// FromState builds a batch document from a state.
func FromState(S batch.State) *BatchFile {
	mass := S.DesiredMass
	conv := S.Conversion
	b := &BatchFile{DesiredMass: &mass, Conversion: &conv, Components: make([]ComponentSpec, len(S.Components))}
	for i, c := range S.Components {
		pm, qm := c.PrecursorMoles, c.ProductMoles
		b.Components[i] = ComponentSpec{Formula: c.Formula, Fraction: c.Fraction, PrecursorMoles: &pm, ProductMoles: &qm}
		if c.ProductFormula != c.Formula {
			b.Components[i].Product = c.ProductFormula
		}
	}
	return b
}

// WriteBatch saves the document to path.
func WriteBatch(path string, b *BatchFile) error {
	out, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshaling batch: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing batch file: %w", err)
	}
	return nil
}
