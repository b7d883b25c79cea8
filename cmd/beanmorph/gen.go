package main

import (
	"fmt"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/dklassen/beanmorph/internal/analyze"
	"github.com/dklassen/beanmorph/internal/codegen"
	"github.com/dklassen/beanmorph/internal/mapping"
)

var (
	genFile   string
	genDir    string
	genDryRun bool
	genDebug  bool

	genCmd = &cobra.Command{
		Use:   "gen",
		Short: "Generate mappers from a YAML declaration",
		Long: `Read the mapper declarations, check them against the structs of the Go
package in --dir (default: the directory holding the declaration file) and
write the generated mappers next to them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd)
		},
	}
)

func init() {
	genCmd.Flags().StringVarP(&genFile, "file", "f", "beanmorph.yaml", "Mapper declaration file")
	genCmd.Flags().StringVar(&genDir, "dir", "", "Package directory (default: directory of --file)")
	genCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Print the generated code instead of writing it")
	genCmd.Flags().BoolVar(&genDebug, "debug", false, "Dump the resolved plan to stderr")
}

func runGen(cmd *cobra.Command) error {
	f, err := mapping.LoadFile(genFile)
	if err != nil {
		return err
	}
	if err := mapping.Validate(f); err != nil {
		return err
	}

	dir := genDir
	if dir == "" {
		dir = filepath.Dir(genFile)
	}
	pkg, err := analyze.Load(dir, ".")
	if err != nil {
		return err
	}
	for _, typeErr := range pkg.Errors {
		logger.Warn("package has type errors, continuing", "package", pkg.PkgPath, "error", typeErr)
	}

	plan, err := codegen.Resolve(f, pkg, filepath.Base(genFile))
	if err != nil {
		return err
	}
	if genDebug {
		fmt.Fprint(cmd.ErrOrStderr(), spew.Sdump(plan))
	}

	files, err := codegen.NewGenerator(codegen.DefaultGeneratorConfig()).Generate(plan)
	if err != nil {
		return err
	}

	if genDryRun {
		for _, file := range files {
			if _, err := cmd.OutOrStdout().Write(file.Content); err != nil {
				return err
			}
		}
		return nil
	}

	if err := codegen.WriteFiles(files, dir); err != nil {
		return err
	}
	for _, file := range files {
		logger.Info("generated", "file", filepath.Join(dir, file.Filename), "mappers", len(plan.Mappers))
	}
	return nil
}
