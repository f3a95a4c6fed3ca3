package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/client"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/pkg/utils"
	"github.com/urfave/cli/v3"
)

var typeFlag = &cli.StringFlag{
	Name:  "type",
	Usage: "Content type: all or one source key",
	Value: string(domain.ContentTypeAll),
}

// SearchCommand activates a filter set, reusing the cached result when it is still fresh.
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the catalog",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			typeFlag,
			&cli.StringSliceFlag{
				Name:  "category",
				Usage: "Filter by category. Can be used multiple times",
			},
			&cli.IntFlag{
				Name:  "month",
				Usage: "Calendar month of the current year (1-12)",
			},
			&cli.StringFlag{
				Name:  "date",
				Usage: "all, today, yesterday, last7, last30, thisMonth, prevMonth",
				Value: string(domain.DateAll),
			},
			&cli.StringFlag{
				Name:  "sort-by",
				Usage: "postDate, createdAt, updatedAt or name",
				Value: string(domain.SortByPostDate),
			},
			&cli.StringFlag{
				Name:  "order",
				Usage: "ASC or DESC",
				Value: string(domain.SortDesc),
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Page size (1-100)",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "refresh",
				Usage: "Ignore the cache and fetch page 1",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			filters, err := filtersFrom(c)
			if err != nil {
				return err
			}
			return runSearch(ctx, c, filters, c.Bool("refresh"))
		},
	}
}

// MoreCommand appends the next page to the cached result of a content type.
func MoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "more",
		Usage: "Load the next page of the last search",
		Flags: []cli.Flag{typeFlag},
		Action: func(ctx context.Context, c *cli.Command) error {
			s, err := openSession(c)
			if err != nil {
				return err
			}
			defer s.Close()

			l, err := s.loader(c.String("type"))
			if err != nil {
				return err
			}

			fetched, err := l.LoadMore(ctx)
			if err != nil {
				return err
			}
			snap := l.Snapshot()
			if !fetched {
				switch {
				case !snap.HasEntry:
					return fmt.Errorf("nothing cached for %s, run search first", snap.ContentType)
				case !snap.Entry.HasMore:
					fmt.Fprintln(os.Stdout, dimStyle.Render("No more content."))
					return nil
				}
			}
			renderSnapshot(os.Stdout, snap)
			return nil
		},
	}
}

// CacheCommand inspects and cleans the local cache.
func CacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the local result cache",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List cached content types",
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openSession(c)
					if err != nil {
						return err
					}
					defer s.Close()

					keys := s.cache.Keys()
					if len(keys) == 0 {
						fmt.Println("Cache is empty")
						return nil
					}
					now := time.Now()
					for _, k := range keys {
						e, _ := s.cache.Peek(k)
						renderCacheLine(os.Stdout, k, e, s.cache.IsFresh(e), now)
					}
					return nil
				},
			},
			{
				Name:  "prune",
				Usage: "Evict stale entries",
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openSession(c)
					if err != nil {
						return err
					}
					defer s.Close()

					evicted := 0
					for _, k := range s.cache.Keys() {
						if s.cache.EvictIfStale(k) {
							evicted++
						}
					}
					fmt.Printf("Evicted %d stale entries\n", evicted)
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "Remove every cached entry",
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openSession(c)
					if err != nil {
						return err
					}
					defer s.Close()

					for _, k := range s.cache.Keys() {
						s.cache.Delete(k)
					}
					fmt.Println("Cache cleared")
					return nil
				},
			},
		},
	}
}

func runSearch(ctx context.Context, c *cli.Command, filters client.Filters, refresh bool) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := s.loader(c.String("type"))
	if err != nil {
		return err
	}

	if refresh {
		l.SetFilters(ctx, filters)
		err = l.Refresh(ctx)
	} else if l.SetFilters(ctx, filters) {
		l.Wait()
		err = l.Snapshot().Err
	}
	if err != nil {
		return err
	}

	renderSnapshot(os.Stdout, l.Snapshot())
	return nil
}

func filtersFrom(c *cli.Command) (client.Filters, error) {
	preset, err := domain.ParseDatePreset(c.String("date"))
	if err != nil {
		return client.Filters{}, err
	}
	sortBy, err := domain.ParseSortField(c.String("sort-by"))
	if err != nil {
		return client.Filters{}, err
	}
	month := c.Int("month")
	if month < 0 || month > 12 {
		return client.Filters{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}

	return client.Filters{
		Query:      c.Args().First(),
		Categories: utils.SplitList(c.StringSlice("category")),
		Month:      month,
		DateFilter: preset,
		SortBy:     sortBy,
		SortOrder:  domain.ParseSortOrder(c.String("order")),
		Limit:      min(max(c.Int("limit"), 1), domain.MaxLimit),
	}, nil
}
