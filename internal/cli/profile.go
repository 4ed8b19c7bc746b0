package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/2beens/athletepro/internal/userdata"

	"github.com/spf13/cobra"
)

func newProfileCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the athlete profile",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.renderProfile(cmd, opts.app.Profile())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <field=value>...",
		Short: "Change profile fields",
		Long:  "Change profile fields: name, bodyweight, height, age, experience, level (beginner|intermediate|advanced|elite).",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := opts.app.Profile()
			for _, arg := range args {
				if err := opts.applyProfileField(&profile, arg); err != nil {
					return err
				}
			}
			if err := opts.app.SaveProfile(cmd.Context(), profile); err != nil {
				return err
			}
			return opts.renderProfile(cmd, profile)
		},
	})

	return cmd
}

func (o *RootOptions) renderProfile(cmd *cobra.Command, p userdata.UserProfile) error {
	return o.render(cmd, p, func(w io.Writer) {
		o.printf(w, "Name: %s\n", p.Name)
		o.printf(w, "Bodyweight: %.1f %s\n", o.fromKg(p.Bodyweight), o.weightUnit())
		o.printf(w, "Height: %.0f cm\n", p.Height)
		o.printf(w, "Age: %d\n", p.Age)
		o.printf(w, "Training experience: %d years\n", p.TrainingExperience)
		o.printf(w, "Level: %s\n", p.Level)
	})
}

func (o *RootOptions) applyProfileField(p *userdata.UserProfile, arg string) error {
	field, value, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("invalid field %q, expected field=value", arg)
	}
	value = strings.TrimSpace(value)

	switch strings.ToLower(strings.TrimSpace(field)) {
	case "name":
		if value == "" {
			return errors.New("name cannot be empty")
		}
		p.Name = value
	case "bodyweight", "weight":
		v, err := parsePositive("bodyweight", value)
		if err != nil {
			return err
		}
		p.Bodyweight = o.toKg(v)
	case "height":
		v, err := parsePositive("height", value)
		if err != nil {
			return err
		}
		p.Height = v
	case "age":
		v, err := parseCount("age", value, 120)
		if err != nil {
			return err
		}
		p.Age = v
	case "experience", "trainingexperience":
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 {
			return errors.New("experience must be a whole number of years")
		}
		p.TrainingExperience = v
	case "level":
		level, ok := userdata.ParseLevel(value)
		if !ok {
			return fmt.Errorf("unknown level %q", value)
		}
		p.Level = level
	default:
		return fmt.Errorf("unknown profile field %q", field)
	}
	return nil
}

func newSettingsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.renderSettings(cmd, opts.app.Settings())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <field=value>...",
		Short: "Change settings",
		Long:  "Change settings: theme (dark|light|contrast), units (metric|imperial), notifications, autoSave, offlineMode (true|false).",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := opts.app.Settings()
			for _, arg := range args {
				if err := applySettingsField(&settings, arg); err != nil {
					return err
				}
			}
			if err := opts.app.SaveSettings(cmd.Context(), settings); err != nil {
				return err
			}
			return opts.renderSettings(cmd, settings)
		},
	})

	return cmd
}

func (o *RootOptions) renderSettings(cmd *cobra.Command, s userdata.Settings) error {
	return o.render(cmd, s, func(w io.Writer) {
		o.printf(w, "Theme: %s\n", s.Theme)
		o.printf(w, "Units: %s\n", s.Units)
		o.printf(w, "Notifications: %t\n", s.NotificationsEnabled)
		o.printf(w, "Auto-save: %t\n", s.AutoSave)
		o.printf(w, "Offline mode: %t\n", s.OfflineMode)
	})
}

func applySettingsField(s *userdata.Settings, arg string) error {
	field, value, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("invalid field %q, expected field=value", arg)
	}

	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return false, fmt.Errorf("%s must be true or false", field)
		}
		return b, nil
	}

	var err error
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "theme":
		theme, ok := userdata.ParseTheme(value)
		if !ok {
			return fmt.Errorf("unknown theme %q", value)
		}
		s.Theme = theme
	case "units":
		units, ok := userdata.ParseUnits(value)
		if !ok {
			return fmt.Errorf("unknown units %q", value)
		}
		s.Units = units
	case "notifications":
		s.NotificationsEnabled, err = parseBool()
	case "autosave":
		s.AutoSave, err = parseBool()
	case "offlinemode":
		s.OfflineMode, err = parseBool()
	default:
		return fmt.Errorf("unknown setting %q", field)
	}
	return err
}
