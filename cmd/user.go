package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/epicevents/crm-management/internal/user"
	"github.com/epicevents/crm-management/internal/view"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Gestion des utilisateurs",
}

var (
	userName     string
	userEmail    string
	userPassword string
	userRole     string

	assignUserID   int64
	assignClientID int64
)

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Crée un utilisateur",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		dto := user.CreateUserDTO{
			Name:     userName,
			Email:    userEmail,
			Password: userPassword,
			RoleName: userRole,
		}
		if _, err := app.Users.Create(actor, dto); err != nil {
			fail(err)
		}
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "Liste les utilisateurs",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		users, err := app.Users.List(actor)
		if err != nil {
			fail(err)
		}
		view.RenderUsers(os.Stdout, users)
	},
}

var userShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Affiche un utilisateur",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		id := parseID(args[0])
		target, err := app.Users.Get(actor, id)
		if err != nil {
			fail(err)
		}
		view.RenderUserDetails(os.Stdout, target)
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Met à jour un utilisateur (les champs omis sont conservés)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		id := parseID(args[0])
		dto := user.UpdateUserDTO{
			Name:     userName,
			Email:    userEmail,
			Password: userPassword,
		}
		if _, err := app.Users.Update(actor, id, dto); err != nil {
			fail(err)
		}
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Supprime un utilisateur",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		id := parseID(args[0])
		if err := app.Users.Delete(actor, id); err != nil {
			fail(err)
		}
	},
}

var userAssignClientCmd = &cobra.Command{
	Use:   "assign-client",
	Short: "Assigne un client à un commercial",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp()
		actor := mustActor(app)
		if err := app.Users.AssignClient(actor, assignUserID, assignClientID); err != nil {
			fail(err)
		}
	},
}

func parseID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fail(err)
	}
	return id
}

func init() {
	userCreateCmd.Flags().StringVar(&userName, "name", "", "nom")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "adresse email")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "mot de passe")
	userCreateCmd.Flags().StringVar(&userRole, "role", "", "rôle (gestion, commercial, support)")

	userUpdateCmd.Flags().StringVar(&userName, "name", "", "nouveau nom")
	userUpdateCmd.Flags().StringVar(&userEmail, "email", "", "nouvelle adresse email")
	userUpdateCmd.Flags().StringVar(&userPassword, "password", "", "nouveau mot de passe")

	userAssignClientCmd.Flags().Int64Var(&assignUserID, "user", 0, "identifiant du commercial")
	userAssignClientCmd.Flags().Int64Var(&assignClientID, "client", 0, "identifiant du client")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userUpdateCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userAssignClientCmd)
}
