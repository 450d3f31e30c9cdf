package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fauli/screenshot-organizer/internal/service"
)

const (
	keySelectedFolder = "selected_folder"
	keyAIMode         = "ai_mode"
	keyHideSolved     = "hide_solved_by_default"
	keyHideNoContent  = "hide_no_content_by_default"
	keyAPIKey         = "openai_api_key"
	keyAutoProcess    = "auto_process_on_startup"
)

var prefKeys = []string{keySelectedFolder, keyAIMode, keyHideSolved, keyHideNoContent, keyAPIKey, keyAutoProcess}

// parsePreference turns a key/value pair into an update. An empty value
// clears selected_folder and openai_api_key.
func parsePreference(key, value string) (service.PreferencesUpdate, error) {
	var u service.PreferencesUpdate

	parseBool := func() (*bool, error) {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		return &b, nil
	}

	var err error
	switch key {
	case keySelectedFolder:
		folder := strings.TrimSpace(value)
		if folder != "" {
			if folder, err = filepath.Abs(folder); err != nil {
				return u, fmt.Errorf("failed to resolve folder: %w", err)
			}
		}
		u.SelectedFolder = &folder
	case keyAIMode:
		u.AIMode = &value
	case keyAPIKey:
		u.OpenAIAPIKey = &value
	case keyHideSolved:
		u.HideSolvedByDefault, err = parseBool()
	case keyHideNoContent:
		u.HideNoContentByDefault, err = parseBool()
	case keyAutoProcess:
		u.AutoProcessOnStartup, err = parseBool()
	default:
		err = fmt.Errorf("unknown preference %q (valid keys: %s)", key, strings.Join(prefKeys, ", "))
	}
	return u, err
}

func (c *CLI) newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change preferences",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show all preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, p, err := c.env(cmd)
			if err != nil {
				return err
			}
			prefs, err := a.PreferencesService.Get(cmd.Context())
			if err != nil {
				return err
			}
			view := newPrefsView(prefs)
			return p.print(view, view.fill)
		},
	}

	set := &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change one preference",
		Long:      "set changes one preference. Switching ai_mode resets every screenshot for reprocessing.\nKeys: " + strings.Join(prefKeys, ", "),
		Args:      cobra.ExactArgs(2),
		ValidArgs: prefKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parsePreference(args[0], args[1])
			if err != nil {
				return err
			}
			a, p, err := c.env(cmd)
			if err != nil {
				return err
			}
			prefs, err := a.PreferencesService.Update(cmd.Context(), u)
			if err != nil {
				return err
			}
			view := newPrefsView(prefs)
			return p.print(view, view.fill)
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}
