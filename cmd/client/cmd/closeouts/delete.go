package closeouts

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"closeouts/internal/domain/closeout"
)

var deleteKey closeout.Key

var DeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Удалить закрытие по PK и SK",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if err := app.Delete(cmd.Context(), deleteKey); err != nil {
			return err
		}
		color.Green("✓ Закрытие %s / %s удалено", deleteKey.PartitionKey, deleteKey.SortKey)
		return nil
	},
}

func init() {
	DeleteCmd.Flags().StringVar(&deleteKey.PartitionKey, "pk", "", "код заведения (PK)")
	DeleteCmd.Flags().StringVar(&deleteKey.SortKey, "sk", "", "ключ записи (SK)")
	_ = DeleteCmd.MarkFlagRequired("pk")
	_ = DeleteCmd.MarkFlagRequired("sk")
}
