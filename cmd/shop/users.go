package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shopcraft/ecommerce-api/models"
)

const (
	usernameFlag = "username"
	rolesFlag    = "roles"
)

func newGrantFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		usernameFlag: &cobraflags.StringFlag{
			Name:  usernameFlag,
			Value: "",
			Usage: "Username of the account to update (required)",
		},
		rolesFlag: &cobraflags.StringFlag{
			Name:  rolesFlag,
			Value: "customer",
			Usage: "Comma separated roles: admin, supplier, customer. Roles not listed are revoked",
		},
	}
}

func newUsersCommand() *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	grantFlags := newGrantFlags()
	grantCmd := &cobra.Command{
		Use:   "grant",
		Short: "Set the roles of a user",
		Long: `Set the roles of an existing user. Accounts created through the API are
customers; this is the only way to create administrators and suppliers.

Example:
  shop users grant --username alice --roles admin,customer`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return grantCommand(cmd, grantFlags)
		},
	}
	cobraflags.RegisterMap(grantCmd, grantFlags)
	cobraflags.RegisterMap(grantCmd, newCommonFlags())

	usersCmd.AddCommand(grantCmd)
	return usersCmd
}

func grantCommand(cmd *cobra.Command, flags map[string]cobraflags.Flag) error {
	username := strings.TrimSpace(flags[usernameFlag].GetString())
	if username == "" {
		return errors.New("--username is required")
	}
	roles, err := parseRoles(flags[rolesFlag].GetString())
	if err != nil {
		return err
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if err := models.NewUsersRepository(e.db).SetRoles(cmd.Context(), username, roles); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return fmt.Errorf("user %q does not exist", username)
		}
		return err
	}

	e.log.Info("Roles updated",
		zap.String("username", username),
		zap.Bool("admin", roles.Admin),
		zap.Bool("supplier", roles.Supplier),
		zap.Bool("customer", roles.Customer),
	)
	return nil
}

func parseRoles(raw string) (models.Roles, error) {
	var roles models.Roles
	for _, name := range strings.Split(raw, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
		case "admin":
			roles.Admin = true
		case "supplier":
			roles.Supplier = true
		case "customer":
			roles.Customer = true
		default:
			return models.Roles{}, fmt.Errorf("unknown role %q", name)
		}
	}
	return roles, nil
}
