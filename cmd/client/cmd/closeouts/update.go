package closeouts

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var updateFile string

var UpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Заменить закрытие содержимым JSON-файла",
	Long:  `Заменяет запись целиком. Запись ищется по PK и SK из файла.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		rec, err := readRecordFile(updateFile)
		if err != nil {
			return err
		}
		if err := app.Update(cmd.Context(), rec); err != nil {
			return err
		}
		color.Green("✓ Закрытие %s / %s обновлено", rec.PartitionKey, rec.SortKey)
		return nil
	},
}

func init() {
	UpdateCmd.Flags().StringVarP(&updateFile, "file", "f", "", "JSON-файл с записью")
	_ = UpdateCmd.MarkFlagRequired("file")
}
