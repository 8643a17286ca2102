package closeouts

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var createFile string

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать закрытие из JSON-файла",
	Long: `Создаёт закрытие кассы. Запись читается из файла, PK и SK обязательны;
если businessDay не указан, он берётся из SK.`,
	Example: `  closeoutctl closeouts create --file rec.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		rec, err := readRecordFile(createFile)
		if err != nil {
			return err
		}
		if err := app.Create(cmd.Context(), rec); err != nil {
			return err
		}
		color.Green("✓ Закрытие %s / %s создано", rec.PartitionKey, rec.SortKey)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&createFile, "file", "f", "", "JSON-файл с записью")
	_ = CreateCmd.MarkFlagRequired("file")
}
