package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jvlmdr/go-crossval/crossval"
	"github.com/jvlmdr/go-crossval/dataset"
	"github.com/jvlmdr/go-crossval/kfold"
	"github.com/jvlmdr/go-crossval/svm"
)

// env is what every subcommand needs before it runs.
type env struct {
	cfg    *config
	logger *zap.Logger
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger}, nil
}

func (e *env) load() (*dataset.Dataset, error) {
	src := dataset.Iris()
	if e.cfg.Data != "" {
		src = dataset.CSV(e.cfg.Data)
	}
	d, err := src.Load()
	if err != nil {
		return nil, err
	}
	e.logger.Info("dataset loaded", zap.Int("samples", d.Len()), zap.Int("features", d.Dim()), zap.Ints("classes", d.Classes()))
	return d, nil
}

func (e *env) classifier() crossval.Classifier {
	return &svm.Linear{C: e.cfg.Cost, Seed: e.cfg.Seed, Logger: e.logger.Named("svm")}
}

func holdoutCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holdout",
		Short: "score on a random held-out test set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()
			d, err := e.load()
			if err != nil {
				return err
			}
			fold, err := kfold.HoldOut(d.Len(), e.cfg.TestSize, e.cfg.Seed)
			if err != nil {
				return err
			}
			score, err := crossval.HoldOutScore(e.classifier(), d, fold)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "train %d, test %d\nAccuracy: %0.2f\n", len(fold.Train), len(fold.Test), score)
			return nil
		},
	}
	cmd.Flags().Float64("test-size", 0.4, "fraction of samples held out for testing")
	return cmd
}

func scoreCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "k-fold cross-validated accuracy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()
			d, err := e.load()
			if err != nil {
				return err
			}
			var s kfold.Splitter
			if e.cfg.Stratified {
				s, err = kfold.NewStratified(d.Y, e.cfg.Folds)
			} else {
				s, err = kfold.New(d.Len(), e.cfg.Folds)
			}
			if err != nil {
				return err
			}
			scores, err := crossval.CrossValScore(cmd.Context(), e.classifier, d, s,
				crossval.WithWorkers(e.cfg.Workers),
				crossval.WithLogger(e.logger))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, v := range scores {
				fmt.Fprintf(out, "fold %d: %0.4f\n", i, v)
			}
			fmt.Fprintln(out, scores)
			return nil
		},
	}
	cmd.Flags().IntP("folds", "k", 5, "number of folds")
	cmd.Flags().Bool("stratified", true, "keep class proportions in every fold")
	cmd.Flags().IntP("workers", "w", 1, "folds evaluated concurrently")
	return cmd
}

func foldsCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folds",
		Short: "print the train and test indices of each fold",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			p, err := kfold.New(e.cfg.Samples, e.cfg.Folds)
			if err != nil {
				return err
			}
			for fold := range p.Folds() {
				fmt.Fprintf(cmd.OutOrStdout(), "%v %v\n", fold.Train, fold.Test)
			}
			return nil
		},
	}
	cmd.Flags().IntP("samples", "n", 4, "number of samples")
	cmd.Flags().IntP("folds", "k", 2, "number of folds")
	return cmd
}
