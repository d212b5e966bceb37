// backctl is the operator CLI for the backoffice API. List options
// (page, size, sort, search) persist across runs in the preferences file,
// so a repeated `backctl pages list` picks up where the last one left off.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"backoffice/client"
	"backoffice/internal/domain/listing"

	"github.com/spf13/cobra"
)

var (
	apiURL    string
	prefsPath string
	token     string

	flagPage   int
	flagSize   int
	flagSort   string
	flagSearch string
)

func defaultPrefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".backctl.json"
	}
	return filepath.Join(home, ".backctl.json")
}

func newClient() *client.Client {
	c := client.New(apiURL)
	if token == "" {
		token = os.Getenv("BACKCTL_TOKEN")
	}
	c.SetToken(token)
	return c
}

// listOptions merges persisted options with whatever flags were set on this
// run, then writes the merged state back.
func listOptions(cmd *cobra.Command) (client.Options, error) {
	prefs := client.NewFilePrefs(prefsPath)
	o, ok, err := prefs.Load(client.PrefKeyPageList)
	if err != nil {
		return client.Options{}, err
	}
	if !ok {
		o = client.DefaultOptions()
	}

	if cmd.Flags().Changed("page") {
		o.CurPage = flagPage
	}
	if cmd.Flags().Changed("size") {
		o.PageSize = flagSize
	}
	if cmd.Flags().Changed("sort") {
		if flagSort == "desc" {
			o.SortDir = listing.Desc
		} else {
			o.SortDir = listing.Asc
		}
	}
	if cmd.Flags().Changed("search") {
		o.Search = flagSearch
	}

	if err := prefs.Save(client.PrefKeyPageList, o); err != nil {
		return client.Options{}, err
	}
	return o, nil
}

func toQuery(o client.Options, sortField string) listing.Query {
	return listing.Query{
		Limit:     o.PageSize,
		Skip:      (o.CurPage - 1) * o.PageSize,
		SortField: sortField,
		SortDir:   o.SortDir,
		Search:    o.Search,
	}
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagPage, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(&flagSize, "size", 10, "records per page")
	cmd.Flags().StringVar(&flagSort, "sort", "asc", "sort direction: asc or desc")
	cmd.Flags().StringVar(&flagSearch, "search", "", "name substring filter")
}

var rootCmd = &cobra.Command{
	Use:           "backctl",
	Short:         "backoffice admin CLI",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Authenticate and print a session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			return fmt.Errorf("--password is required")
		}

		c := client.New(apiURL)
		u, err := c.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s %s (%s)\n",
			u.Profile.FirstName, u.Profile.LastName, strings.Join(u.Roles, ","))
		fmt.Fprintln(cmd.OutOrStdout(), c.Token())
		return nil
	},
}

var pagesCmd = &cobra.Command{Use: "pages", Short: "Content page operations"}

var pagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List content pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := listOptions(cmd)
		if err != nil {
			return err
		}

		res, err := newClient().ListPages(cmd.Context(), toQuery(o, "title"))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSLUG\tACTIVE")
		for _, p := range res.Data {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", p.ID, p.Title, p.Slug, p.Active)
		}
		w.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "page %d, %d total\n", o.CurPage, res.Count)
		return nil
	},
}

var pagesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Soft-delete a content page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to delete without --yes")
		}
		if err := newClient().DeletePage(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
		return nil
	},
}

var usersCmd = &cobra.Command{Use: "users", Short: "User account operations"}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := listOptions(cmd)
		if err != nil {
			return err
		}

		res, err := newClient().ListUsers(cmd.Context(), toQuery(o, "lastName"))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLES\tACTIVE")
		for _, u := range res.Data {
			fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%t\n",
				u.ID, u.Email, u.Profile.FirstName, u.Profile.LastName,
				strings.Join(u.Roles, ","), u.Active)
		}
		w.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "page %d, %d total\n", o.CurPage, res.Count)
		return nil
	},
}

var usersCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count user accounts matching a search",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		n, err := newClient().CountUsers(cmd.Context(), search)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "API base URL")
	rootCmd.PersistentFlags().StringVar(&prefsPath, "prefs", defaultPrefsPath(), "preferences file")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "session token (or BACKCTL_TOKEN)")

	loginCmd.Flags().String("password", "", "account password")
	pagesDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	usersCountCmd.Flags().String("search", "", "name substring filter")
	addListFlags(pagesListCmd)
	addListFlags(usersListCmd)

	pagesCmd.AddCommand(pagesListCmd, pagesDeleteCmd)
	usersCmd.AddCommand(usersListCmd, usersCountCmd)
	rootCmd.AddCommand(loginCmd, pagesCmd, usersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
