package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/epicevents/crm-management/internal/view"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Ouvre une session",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		if _, err := app.Auth.Login(loginEmail, loginPassword); err != nil {
			fail(err)
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Ferme la session courante",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		if err := app.Auth.Logout(); err != nil {
			fail(err)
		}
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Affiche l'utilisateur connecté",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		view.RenderUserDetails(os.Stdout, actor)
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "adresse email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "mot de passe")
	if err := loginCmd.MarkFlagRequired("email"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if err := loginCmd.MarkFlagRequired("password"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
