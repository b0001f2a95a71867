package view

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/epicevents/crm-management/internal/client"
	"github.com/epicevents/crm-management/internal/contract"
	"github.com/epicevents/crm-management/internal/event"
	"github.com/epicevents/crm-management/internal/user"
)

const dateFormat = "2006-01-02 15:04"

// RenderUsers writes a tabular listing of users.
func RenderUsers(w io.Writer, users []*user.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOM\tEMAIL\tRÔLE")
	for _, u := range users {
		role := "-"
		if u.Role != nil {
			role = string(u.Role.Name)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, role)
	}
	tw.Flush()
}

// RenderUserDetails writes a one-record detail view.
func RenderUserDetails(w io.Writer, u *user.User) {
	role := "-"
	if u.Role != nil {
		role = string(u.Role.Name)
	}
	fmt.Fprintf(w, "Utilisateur %d\n  Nom : %s\n  Email : %s\n  Rôle : %s\n", u.ID, u.Name, u.Email, role)
}

// RenderClients writes a tabular listing of clients.
func RenderClients(w io.Writer, clients []*client.Client) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOM\tEMAIL\tTÉLÉPHONE\tENTREPRISE\tCOMMERCIAL")
	for _, c := range clients {
		commercial := "-"
		if c.CommercialID != nil {
			commercial = fmt.Sprintf("%d", *c.CommercialID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Phone, c.Company, commercial)
	}
	tw.Flush()
}

// RenderContracts writes a tabular listing of contracts.
func RenderContracts(w io.Writer, contracts []*contract.Contract) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCLIENT\tTOTAL\tRESTANT\tSIGNÉ\tCRÉÉ LE")
	for _, c := range contracts {
		signed := "non"
		if c.Status {
			signed = "oui"
		}
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.2f\t%s\t%s\n",
			c.ID, c.ClientID, c.TotalAmount, c.RemainingAmount, signed, c.DateCreated.Format(dateFormat))
	}
	tw.Flush()
}

// RenderEvents writes a tabular listing of events.
func RenderEvents(w io.Writer, events []*event.Event) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOM\tCONTRAT\tDÉBUT\tFIN\tLIEU\tPARTICIPANTS\tSUPPORT")
	for _, e := range events {
		support := "-"
		if e.SupportID != nil {
			support = fmt.Sprintf("%d", *e.SupportID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%d\t%s\n",
			e.ID, e.Name, e.ContractID,
			e.StartDate.Format(dateFormat), e.EndDate.Format(dateFormat),
			e.Location, e.Attendees, support)
	}
	tw.Flush()
}
