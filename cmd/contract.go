package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/epicevents/crm-management/internal/contract"
	"github.com/epicevents/crm-management/internal/view"
)

var contractCmd = &cobra.Command{
	Use:   "contrat",
	Short: "Gestion des contrats",
}

var (
	contractClientID  int64
	contractTotal     float64
	contractRemaining float64
	contractSigned    bool
)

var contractCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Crée un contrat (non signé) pour un client",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		dto := contract.CreateContractDTO{
			ClientID:        contractClientID,
			TotalAmount:     contractTotal,
			RemainingAmount: contractRemaining,
		}
		if _, err := app.Contracts.Create(actor, dto); err != nil {
			fail(err)
		}
	},
}

var contractClientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Liste les clients disponibles pour un nouveau contrat",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		clients, err := app.Contracts.SelectableClients(actor)
		if err != nil {
			fail(err)
		}
		view.RenderClients(os.Stdout, clients)
	},
}

var contractListCmd = &cobra.Command{
	Use:   "list",
	Short: "Liste tous les contrats",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		contracts, err := app.Contracts.List(actor)
		if err != nil {
			fail(err)
		}
		view.RenderContracts(os.Stdout, contracts)
	},
}

var contractFilterCmd = &cobra.Command{
	Use:   "filter <non_signes|paiement_en_attente>",
	Short: "Filtre les contrats",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		contracts, err := app.Contracts.Filter(actor, args[0])
		if err != nil {
			fail(err)
		}
		view.RenderContracts(os.Stdout, contracts)
	},
}

var contractUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Met à jour un contrat (les champs omis sont conservés)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		id := parseID(args[0])

		var dto contract.UpdateContractDTO
		if cmd.Flags().Changed("total") {
			dto.TotalAmount = &contractTotal
		}
		if cmd.Flags().Changed("remaining") {
			dto.RemainingAmount = &contractRemaining
		}
		if cmd.Flags().Changed("signed") {
			dto.Status = &contractSigned
		}

		if _, err := app.Contracts.Update(actor, id, dto); err != nil {
			fail(err)
		}
	},
}

func init() {
	contractCreateCmd.Flags().Int64Var(&contractClientID, "client", 0, "identifiant du client")
	contractCreateCmd.Flags().Float64Var(&contractTotal, "total", 0, "montant total")
	contractCreateCmd.Flags().Float64Var(&contractRemaining, "remaining", 0, "montant restant dû")

	contractUpdateCmd.Flags().Float64Var(&contractTotal, "total", 0, "nouveau montant total (ignoré si le contrat est signé)")
	contractUpdateCmd.Flags().Float64Var(&contractRemaining, "remaining", 0, "nouveau montant restant dû")
	contractUpdateCmd.Flags().BoolVar(&contractSigned, "signed", false, "état de signature")

	contractCmd.AddCommand(contractCreateCmd)
	contractCmd.AddCommand(contractClientsCmd)
	contractCmd.AddCommand(contractListCmd)
	contractCmd.AddCommand(contractFilterCmd)
	contractCmd.AddCommand(contractUpdateCmd)
}
