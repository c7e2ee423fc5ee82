package cmd

import (
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// githubRepoSlug specifies the GitHub repository (owner/repo) to check for
// updates.
const githubRepoSlug = "jamezp/wildfly-plugin-tools"

// selfUpdateCheckOnly reports whether an update exists without installing it.
var selfUpdateCheckOnly bool

// selfUpdateVersion pins the release to install instead of the latest one.
var selfUpdateVersion string

// newSelfUpdateCmd creates the Cobra command for the self-update
// functionality. This allows the application to update itself from the
// GitHub releases of the project.
func newSelfUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "self-update",
		Short: "Update wildfly-tool to the latest version",
		Long: `Checks the GitHub releases of wildfly-tool and replaces the current
binary when a newer version is found. With --check-only the command
reports what it would install and stops. --version installs a specific
release instead of the latest one, which also allows downgrades.`,
		Args: noArgs,
		RunE: runSelfUpdate,
	}
	cmd.Flags().BoolVar(&selfUpdateCheckOnly, "check-only", false, "Only report whether an update is available")
	cmd.Flags().StringVar(&selfUpdateVersion, "version", "", "Install this release instead of the latest one (e.g. v1.2.0)")
	return cmd
}

// runSelfUpdate performs the self-update logic.
// It resolves the wanted release, compares it against the running version
// and replaces the binary when appropriate.
func runSelfUpdate(cmd *cobra.Command, args []string) error {
	currentVersion := rootCmd.Version
	// Development builds are not releases and have nothing meaningful to
	// compare against, so self-update refuses them.
	if currentVersion == "" || currentVersion == "dev" {
		return fmt.Errorf("cannot self-update a development version")
	}

	fmt.Printf("Current version: %s\n", currentVersion)

	updater, err := selfupdate.NewUpdater(selfupdate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create updater: %w", err)
	}

	release, err := resolveRelease(cmd, updater)
	if err != nil {
		return err
	}

	if selfUpdateVersion == "" && !release.GreaterThan(currentVersion) {
		fmt.Println("Current version is the latest.")
		return nil
	}
	fmt.Printf("Found version: %s (published at %s)\n", release.Version(), release.PublishedAt)

	if selfUpdateCheckOnly {
		fmt.Println("Run again without --check-only to install it.")
		return nil
	}

	// Get the path to the currently running executable to replace it with
	// the resolved version.
	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	fmt.Printf("Updating %s to version %s...\n", exe, release.Version())

	if err := updater.UpdateTo(commandContext(cmd), release, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	fmt.Printf("Successfully updated to version %s\n", release.Version())
	return nil
}

// resolveRelease finds the release to install: the latest one, or the one
// pinned with --version.
func resolveRelease(cmd *cobra.Command, updater *selfupdate.Updater) (*selfupdate.Release, error) {
	ctx := commandContext(cmd)
	repository := selfupdate.ParseSlug(githubRepoSlug)

	if selfUpdateVersion != "" {
		release, found, err := updater.DetectVersion(ctx, repository, selfUpdateVersion)
		if err != nil {
			return nil, fmt.Errorf("error detecting version %s: %w", selfUpdateVersion, err)
		}
		if !found {
			return nil, fmt.Errorf("release %s of %s could not be found", selfUpdateVersion, githubRepoSlug)
		}
		return release, nil
	}

	fmt.Println("Checking for updates...")
	release, found, err := updater.DetectLatest(ctx, repository)
	if err != nil {
		return nil, fmt.Errorf("error detecting latest version: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("latest release for %s could not be found", githubRepoSlug)
	}
	return release, nil
}
