package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/epicevents/crm-management/internal/client"
	"github.com/epicevents/crm-management/internal/view"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Gestion des clients",
}

var (
	clientName    string
	clientEmail   string
	clientPhone   string
	clientCompany string
	clientMine    bool
)

var clientCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Crée un client attribué au commercial connecté",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		dto := client.CreateClientDTO{
			Name:    clientName,
			Email:   clientEmail,
			Phone:   clientPhone,
			Company: clientCompany,
		}
		if _, err := app.Clients.Create(actor, dto); err != nil {
			fail(err)
		}
	},
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "Liste les clients (--mine pour les clients personnels)",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)

		var (
			clients []*client.Client
			err     error
		)
		if clientMine {
			clients, err = app.Clients.ListPersonal(actor)
		} else {
			clients, err = app.Clients.ListAll(actor)
		}
		if err != nil {
			fail(err)
		}
		view.RenderClients(os.Stdout, clients)
	},
}

var clientUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Met à jour un client (les champs omis sont conservés)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		id := parseID(args[0])
		dto := client.UpdateClientDTO{
			Name:    clientName,
			Email:   clientEmail,
			Phone:   clientPhone,
			Company: clientCompany,
		}
		if _, err := app.Clients.Update(actor, id, dto); err != nil {
			fail(err)
		}
	},
}

func init() {
	clientCreateCmd.Flags().StringVar(&clientName, "name", "", "nom")
	clientCreateCmd.Flags().StringVar(&clientEmail, "email", "", "adresse email")
	clientCreateCmd.Flags().StringVar(&clientPhone, "phone", "", "téléphone")
	clientCreateCmd.Flags().StringVar(&clientCompany, "company", "", "entreprise")

	clientListCmd.Flags().BoolVar(&clientMine, "mine", false, "uniquement mes clients")

	clientUpdateCmd.Flags().StringVar(&clientName, "name", "", "nouveau nom")
	clientUpdateCmd.Flags().StringVar(&clientEmail, "email", "", "nouvelle adresse email")
	clientUpdateCmd.Flags().StringVar(&clientPhone, "phone", "", "nouveau téléphone")
	clientUpdateCmd.Flags().StringVar(&clientCompany, "company", "", "nouvelle entreprise")

	clientCmd.AddCommand(clientCreateCmd)
	clientCmd.AddCommand(clientListCmd)
	clientCmd.AddCommand(clientUpdateCmd)
}
