package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/rpgo/realestate-estimator/internal/output"
)

func (a *app) initConfigCmd() *cobra.Command {
	var (
		dir   string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write an example policy file and example transactions",
		Long: `init-config writes estimator.yaml with the statutory default rates, plus
buy.yaml and sell.yaml example transactions that the file command accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}

			files := []struct {
				name  string
				write func(path string) error
			}{
				{"estimator.yaml", func(path string) error {
					return output.SaveConfiguration(a.parser.CreateExampleConfiguration(), path)
				}},
				{"buy.yaml", func(path string) error {
					return output.SaveTransaction(a.parser.CreateExampleTransaction(domain.RoleBuyer), path)
				}},
				{"sell.yaml", func(path string) error {
					return output.SaveTransaction(a.parser.CreateExampleTransaction(domain.RoleSeller), path)
				}},
			}

			for _, f := range files {
				path := filepath.Join(dir, f.name)
				if !force {
					if _, err := os.Stat(path); err == nil {
						return fmt.Errorf("%s already exists (use --force to overwrite)", path)
					} else if !errors.Is(err, fs.ErrNotExist) {
						return err
					}
				}
				if err := f.write(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to write the files into")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}
