package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/epicevents/crm-management/internal/event"
	"github.com/epicevents/crm-management/internal/view"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Gestion des événements",
}

var (
	eventContractID int64
	eventName       string
	eventStart      string
	eventEnd        string
	eventLocation   string
	eventAttendees  int
	eventSupportID  int64
	eventNotes      string
)

const eventDateLayout = "2006-01-02 15:04"

var eventCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Crée un événement sur un contrat signé",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)

		start, err := time.Parse(eventDateLayout, eventStart)
		if err != nil {
			fail(err)
		}
		end, err := time.Parse(eventDateLayout, eventEnd)
		if err != nil {
			fail(err)
		}

		dto := event.CreateEventDTO{
			ContractID: eventContractID,
			Name:       eventName,
			StartDate:  start,
			EndDate:    end,
			Location:   eventLocation,
			Attendees:  eventAttendees,
			Notes:      eventNotes,
		}
		if cmd.Flags().Changed("support") {
			dto.SupportID = &eventSupportID
		}

		if _, err := app.Events.Create(actor, dto); err != nil {
			fail(err)
		}
	},
}

var eventContractsCmd = &cobra.Command{
	Use:   "contrats",
	Short: "Liste les contrats signés disponibles pour un nouvel événement",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		contracts, err := app.Events.SelectableContracts(actor)
		if err != nil {
			fail(err)
		}
		view.RenderContracts(os.Stdout, contracts)
	},
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "Liste tous les événements",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		events, err := app.Events.List(actor)
		if err != nil {
			fail(err)
		}
		view.RenderEvents(os.Stdout, events)
	},
}

var eventFilterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filtre les événements selon le rôle (support : les siens, gestion : sans support)",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		events, err := app.Events.Filter(actor)
		if err != nil {
			fail(err)
		}
		view.RenderEvents(os.Stdout, events)
	},
}

var eventUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Met à jour un événement (gestion : support, support : notes)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		id := parseID(args[0])

		var dto event.UpdateEventDTO
		if cmd.Flags().Changed("support") {
			dto.SupportID = &eventSupportID
		}
		if cmd.Flags().Changed("notes") {
			dto.Notes = &eventNotes
		}

		if _, err := app.Events.Update(actor, id, dto); err != nil {
			fail(err)
		}
	},
}

func init() {
	eventCreateCmd.Flags().Int64Var(&eventContractID, "contrat", 0, "identifiant du contrat signé")
	eventCreateCmd.Flags().StringVar(&eventName, "name", "", "nom de l'événement")
	eventCreateCmd.Flags().StringVar(&eventStart, "start", "", "date de début (AAAA-MM-JJ HH:MM)")
	eventCreateCmd.Flags().StringVar(&eventEnd, "end", "", "date de fin (AAAA-MM-JJ HH:MM)")
	eventCreateCmd.Flags().StringVar(&eventLocation, "location", "", "lieu")
	eventCreateCmd.Flags().IntVar(&eventAttendees, "attendees", 0, "nombre de participants")
	eventCreateCmd.Flags().Int64Var(&eventSupportID, "support", 0, "identifiant du support assigné")
	eventCreateCmd.Flags().StringVar(&eventNotes, "notes", "", "notes")

	eventUpdateCmd.Flags().Int64Var(&eventSupportID, "support", 0, "nouveau support assigné")
	eventUpdateCmd.Flags().StringVar(&eventNotes, "notes", "", "nouvelles notes")

	eventCmd.AddCommand(eventCreateCmd)
	eventCmd.AddCommand(eventContractsCmd)
	eventCmd.AddCommand(eventListCmd)
	eventCmd.AddCommand(eventFilterCmd)
	eventCmd.AddCommand(eventUpdateCmd)
}
