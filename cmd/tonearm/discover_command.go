package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tonearm/internal/actions"
	"tonearm/internal/artists"
	"tonearm/internal/catalog"
	"tonearm/internal/download"
	"tonearm/internal/ignore"
	"tonearm/internal/lastfm"
	"tonearm/internal/library"
	"tonearm/internal/logging"
	"tonearm/internal/remote"
	"tonearm/internal/services"
)

// discovery is one missing album offered for triage.
type discovery struct {
	Title      string
	Year       int
	EditionID  string
	URL        string
	Quality    string
	TrackCount int
	Listeners  int

	// KeepTracks is the trimmed track list when the album merged a hi-fi
	// edition with a larger track list than the standard edition.
	KeepTracks []catalog.TrackRef
	Trimmed    int
}

func newDiscoverCommand(ctx *commandContext) *cobra.Command {
	var all bool
	var includeIgnored bool

	cmd := &cobra.Command{
		Use:   "discover [artist]",
		Short: "Find albums on the remote catalog that the library is missing",
		Long: "Discover compares an artist's remote catalog against the local library\n" +
			"and offers each missing album for download, ignore, or open-in-browser.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return errors.New("name an artist or pass --all")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd.Context(), "discover")
			logger := logging.WithContext(runCtx, ctx.commandLogger())

			libArtists, err := library.Scan(cfg.Paths.LibraryDir)
			if err != nil {
				return err
			}
			store, err := ctx.ignoreStore()
			if err != nil {
				return err
			}
			client, err := ctx.remoteClient()
			if err != nil {
				return err
			}
			popularity := ctx.lastfmClient()

			d := &discoverer{
				ctx:            ctx,
				cmd:            cmd,
				client:         client,
				popularity:     popularity,
				store:          store,
				includeIgnored: includeIgnored,
			}

			if all {
				for _, artist := range libArtists {
					if err := d.discoverArtist(runCtx, artist.CanonicalName, libArtists); err != nil {
						return err
					}
				}
				return nil
			}

			query := args[0]
			index := artists.BuildIndex(library.Names(libArtists))
			resolution := artists.Resolve(query, index, cfg.Matching.Threshold, cfg.Matching.Suggestions)
			if !resolution.Confident() {
				printSuggestions(cmd, query, resolution.Suggestions)
				// A new artist is still worth a remote lookup.
				logger.Debug("no confident library match, querying remote directly",
					logging.String("query", query))
				return d.discoverArtist(runCtx, query, libArtists)
			}
			return d.discoverArtist(runCtx, resolution.Match.Entry.CanonicalName, libArtists)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Discover for every artist in the library")
	cmd.Flags().BoolVarP(&includeIgnored, "include-ignored", "I", false, "Offer albums and artists on the ignore list")
	return cmd
}

func printSuggestions(cmd *cobra.Command, query string, suggestions []artists.MatchResult) {
	if len(suggestions) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No library artist resembles %q.\n", query)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "No confident library match for %q. Did you mean:\n", query)
	for _, s := range suggestions {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s (%d)\n", s.Entry.CanonicalName, s.Score)
	}
}

type discoverer struct {
	ctx            *commandContext
	cmd            *cobra.Command
	client         *remote.Client
	popularity     *lastfm.Client
	store          *ignore.Store
	includeIgnored bool
}

func (d *discoverer) discoverArtist(runCtx context.Context, artistName string, libArtists []library.Artist) error {
	out := d.cmd.OutOrStdout()

	if !d.includeIgnored && d.store.IsIgnored(artistName, "") {
		fmt.Fprintf(out, "%s is on the ignore list. Pass -I to include it.\n", artistName)
		return nil
	}

	remoteArtist, err := d.client.SearchArtist(runCtx, artistName)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			fmt.Fprintf(out, "%s was not found on the remote catalog.\n", artistName)
			return nil
		}
		return err
	}

	editions, err := d.client.ArtistAlbums(runCtx, remoteArtist.ID)
	if err != nil {
		return err
	}

	var libArtist *library.Artist
	for i := range libArtists {
		if library.StripArticle(libArtists[i].CanonicalName) == library.StripArticle(artistName) {
			libArtist = &libArtists[i]
			break
		}
	}

	missing, err := d.collectMissing(runCtx, editions, remoteArtist.Name, libArtist)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		fmt.Fprintf(out, "No missing albums for %s.\n", remoteArtist.Name)
		return nil
	}

	header := remoteArtist.Name
	if tag := d.popularity.ArtistTopTag(runCtx, remoteArtist.Name); tag != "" {
		header = fmt.Sprintf("%s (%s)", remoteArtist.Name, tag)
	}
	fmt.Fprintf(out, "\nMissing albums for %s:\n", header)
	printDiscoveries(d.cmd, missing, d.popularity.Enabled())

	return runInteractiveLoop(d.cmd.InOrStdin(), out, len(missing), actions.DiscoveryCapabilities,
		func(index int, action actions.Action) error {
			return d.applyAction(runCtx, remoteArtist.Name, missing[index-1], action)
		})
}

// collectMissing filters, resolves, and ranks the remote editions.
func (d *discoverer) collectMissing(runCtx context.Context, editions []catalog.Edition, artistName string, libArtist *library.Artist) ([]discovery, error) {
	var missing []discovery
	for _, group := range catalog.Group(editions) {
		if libArtist != nil && libArtist.HasAlbum(group.NormalizedTitle) {
			continue
		}
		if !d.includeIgnored && d.store.IsIgnored(artistName, group.NormalizedTitle) {
			continue
		}

		resolved, standard, hifi, err := d.resolveWithTracks(runCtx, group)
		if err != nil {
			return nil, err
		}

		entry := discovery{
			Title:      standard.RawTitle,
			Year:       resolved.Year,
			EditionID:  resolved.AudioSourceEditionID,
			URL:        d.client.AlbumURL(resolved.AudioSourceEditionID),
			Quality:    fmt.Sprintf("%d/%s", hifi.BitDepth, strconv.FormatFloat(hifi.SampleRate, 'f', -1, 64)),
			TrackCount: hifi.TotalTracks,
		}
		if resolved.TracksTrimmed > 0 {
			entry.KeepTracks = resolved.FinalTrackList
			entry.Trimmed = resolved.TracksTrimmed
		}
		missing = append(missing, entry)
	}

	if d.popularity.Enabled() && len(missing) > 1 {
		titles := make([]string, 0, len(missing))
		byTitle := make(map[string]discovery, len(missing))
		for _, entry := range missing {
			titles = append(titles, entry.Title)
			byTitle[entry.Title] = entry
		}
		ranked := d.popularity.RankByListeners(runCtx, artistName, titles)
		reordered := make([]discovery, 0, len(missing))
		for _, r := range ranked {
			entry := byTitle[r.Title]
			entry.Listeners = r.Listeners
			reordered = append(reordered, entry)
		}
		missing = reordered
	}
	return missing, nil
}

// resolveWithTracks resolves a group, fetching track lists for the two
// selected editions only when an actual merge is needed.
func (d *discoverer) resolveWithTracks(runCtx context.Context, group catalog.AlbumGroup) (catalog.ResolvedAlbum, catalog.Edition, catalog.Edition, error) {
	standard := catalog.SelectStandard(group)
	hifi := catalog.SelectHiFi(group)
	if standard.ID != hifi.ID {
		for i := range group.Editions {
			edition := &group.Editions[i]
			if edition.ID != standard.ID && edition.ID != hifi.ID {
				continue
			}
			tracks, err := d.client.AlbumTracks(runCtx, edition.ID)
			if err != nil {
				return catalog.ResolvedAlbum{}, standard, hifi, err
			}
			edition.TrackList = tracks
			if edition.ID == standard.ID {
				standard.TrackList = tracks
			}
			if edition.ID == hifi.ID {
				hifi.TrackList = tracks
			}
		}
	}
	return catalog.Resolve(group), standard, hifi, nil
}

func (d *discoverer) applyAction(runCtx context.Context, artistName string, entry discovery, action actions.Action) error {
	out := d.cmd.OutOrStdout()
	switch action {
	case actions.ActionDownload:
		path, err := d.ctx.downloader().Download(runCtx, download.Request{
			AlbumURL: entry.URL,
			Artist:   artistName,
			Year:     entry.Year,
			Title:    entry.Title,
		})
		if err != nil {
			return err
		}
		if len(entry.KeepTracks) > 0 {
			removed, err := download.RemoveBonusTracks(path, entry.KeepTracks)
			if err != nil {
				return err
			}
			if len(removed) > 0 {
				fmt.Fprintf(out, "Removed %d bonus tracks from %s.\n", len(removed), entry.Title)
			}
		}
		fmt.Fprintf(out, "Downloaded %s to %s.\n", entry.Title, path)
		return nil
	case actions.ActionIgnore:
		if err := d.store.Add(artistName, entry.Title); err != nil {
			return err
		}
		fmt.Fprintf(out, "Ignoring %s - %s.\n", artistName, entry.Title)
		return nil
	case actions.ActionOpen:
		return openInBrowser(runCtx, entry.URL)
	default:
		return services.Wrap(services.ErrValidation, "discover", "apply action",
			fmt.Sprintf("unsupported action %q", string(action)), nil)
	}
}

func printDiscoveries(cmd *cobra.Command, missing []discovery, withListeners bool) {
	headers := []string{"#", "Album", "Year", "Quality", "Tracks"}
	if withListeners {
		headers = append(headers, "Listeners")
	}

	rows := make([][]string, 0, len(missing))
	for i, entry := range missing {
		row := []string{
			strconv.Itoa(i + 1),
			discoveryTitle(entry),
			strconv.Itoa(entry.Year),
			entry.Quality,
			strconv.Itoa(entry.TrackCount),
		}
		if withListeners {
			row = append(row, strconv.Itoa(entry.Listeners))
		}
		rows = append(rows, row)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows))
}

func discoveryTitle(entry discovery) string {
	if entry.Trimmed == 0 {
		return entry.Title
	}
	return fmt.Sprintf("%s (trims %d bonus tracks)", entry.Title, entry.Trimmed)
}
