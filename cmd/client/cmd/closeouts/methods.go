package closeouts

import (
	"fmt"

	"github.com/spf13/cobra"
)

var MethodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "Способы оплаты, найденные в закрытиях",
	Long: `Выводит колонки способов оплаты в том порядке, в котором их показывает list:
сначала известные способы, затем прочие по алфавиту.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if err := load(cmd.Context(), app); err != nil {
			return fmt.Errorf("ошибка загрузки закрытий: %w", err)
		}

		methods := app.Methods()
		if jsonOutput {
			return printJSON(methods)
		}
		for _, m := range methods {
			fmt.Println(m)
		}
		return nil
	},
}

func init() {
	MethodsCmd.Flags().BoolVar(&offline, "offline", false, "использовать сохранённый снимок")
}
