package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cats"},
	Short:   "列出分类及其扩展名",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := cfg.Registry()

		var rows [][]string
		for _, c := range registry.Categories() {
			dated := ""
			if registry.IsDated(c.ID) {
				dated = "年/月"
			}
			rows = append(rows, []string{c.Icon + " " + c.ID, c.Folder, dated, strings.Join(c.Extensions, " ")})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"分类", "文件夹", "日期子目录", "扩展名"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
		))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
