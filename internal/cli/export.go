package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func (a *app) exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the cached session as JSON",
		Long: `Write the cached session as JSON document. The document can be imported
again through the API. The backend is not contacted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeCache, err := a.offlineSession(cmd)
			if err != nil {
				return err
			}
			defer closeCache()

			data, err := svc.Export()
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			return os.WriteFile(out, data, 0o600)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write to instead of stdout")
	return cmd
}
