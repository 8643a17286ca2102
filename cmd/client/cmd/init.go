package cmd

import (
	"closeouts/cmd/client/cmd/closeouts"
	"closeouts/cmd/client/cmd/sync"
)

func init() {
	rootCmd.AddCommand(closeouts.CloseoutsCmd)
	closeouts.CloseoutsCmd.AddCommand(closeouts.ListCmd)
	closeouts.CloseoutsCmd.AddCommand(closeouts.MethodsCmd)
	closeouts.CloseoutsCmd.AddCommand(closeouts.CreateCmd)
	closeouts.CloseoutsCmd.AddCommand(closeouts.UpdateCmd)
	closeouts.CloseoutsCmd.AddCommand(closeouts.DeleteCmd)

	rootCmd.AddCommand(sync.SyncCmd)
}
