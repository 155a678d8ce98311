/*
 * root.go, part of glassbatch.
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

// Package cmd contains the glassbatch CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	batch "github.com/rmera/glassbatch"
	"github.com/rmera/glassbatch/internal/config"
	"github.com/rmera/glassbatch/internal/logging"
	"github.com/rmera/glassbatch/periodic"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app is the state shared by all the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
	table   *batch.Table
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New(), log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "glassbatch",
		Short: "Glass batch calculator",
		Long: `glassbatch computes the weights of the raw materials needed for a glass
batch from the "matrix" percentages of its components, the gravimetric
factors of precursors that decompose on melting (e.g. H3BO3 -> B2O3),
and the elemental composition of the batch.

Settings can also be given in a YAML config file (--config) or with
GLASSBATCH_* environment variables, e.g. GLASSBATCH_BATCH_MASS=10.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (yaml)")
	root.PersistentFlags().String("table", "", "atomic mass table, CSV, may be zstd-compressed (default: embedded table)")
	root.PersistentFlags().Int("decimals", 4, "decimals shown in the results")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "console", "log format: console or json")
	a.v.BindPFlag("table", root.PersistentFlags().Lookup("table"))
	a.v.BindPFlag("decimals", root.PersistentFlags().Lookup("decimals"))
	a.v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	a.v.BindPFlag("log.format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(
		newComputeCmd(a),
		newMWCmd(a),
		newGFCmd(a),
		newSuggestCmd(a),
		newServeCmd(a),
		newInitCmd(a),
	)
	return root
}

// Execute runs the glassbatch command line.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the configuration, the logger and the mass table.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	z, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.log = z
	if cfg.Table == "" {
		a.table = periodic.Default()
		a.log.Debug("using embedded mass table", zap.Int("elements", a.table.Len()))
		return nil
	}
	a.table, err = periodic.ReadFile(cfg.Table)
	if err != nil {
		return fmt.Errorf("loading mass table: %w", err)
	}
	a.log.Debug("mass table loaded", zap.String("file", cfg.Table), zap.Int("elements", a.table.Len()))
	return nil
}

func (a *app) num(x float64) string {
	decimals := 4
	if a.cfg != nil {
		decimals = a.cfg.Decimals
	}
	return strconv.FormatFloat(x, 'f', decimals, 64)
}

func (a *app) warn(cmd *cobra.Command, msg string, fields ...zap.Field) {
	a.log.Warn(msg, fields...)
	fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", msg)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
