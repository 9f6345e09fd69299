package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/UniversalLevi/InstagramAutomation/pkg/queue"
	"github.com/UniversalLevi/InstagramAutomation/pkg/scheduler"
)

var postFlags = []cli.Flag{
	&cli.StringSliceFlag{
		Name:    "media",
		Aliases: []string{"m"},
		Usage:   "Media file to post (repeat for a carousel)",
	},
	&cli.StringFlag{
		Name:  "caption",
		Usage: "Post caption",
	},
	&cli.StringSliceFlag{
		Name:    "tag",
		Aliases: []string{"t"},
		Usage:   "Hashtag without the # prefix (repeatable)",
	},
	&cli.StringFlag{
		Name:  "type",
		Usage: "Media type (photo, video, carousel; default inferred from files)",
	},
}

var postCommand = &cli.Command{
	Name:  "post",
	Usage: "Publish media to the account immediately",
	Description: `Queue the media and run the posting attempt right away.

Examples:
  autopost post --media photo.jpg --caption "hello"
  autopost post -m a.jpg -m b.jpg --caption "trip" -t travel -t sunset`,
	Flags:  postFlags,
	Action: runPost,
}

var queueCommand = &cli.Command{
	Name:  "queue",
	Usage: "Manage the post queue",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "Add a post to the queue",
			Flags: append(postFlags, &cli.StringFlag{
				Name:  "at",
				Usage: "Schedule time (RFC3339, e.g. 2026-09-01T18:00:00Z)",
			}),
			Action: runQueueAdd,
		},
		{
			Name:   "list",
			Usage:  "List queued posts",
			Action: runQueueList,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "status",
					Usage: "Filter by status (pending, scheduled, posted, failed)",
				},
			},
		},
		{
			Name:      "remove",
			Usage:     "Remove a post and its staged media",
			ArgsUsage: "<post-id>",
			Action:    runQueueRemove,
		},
	},
}

func addFromFlags(c *cli.Context, ws *workspace) (*queue.PostItem, error) {
	files := c.StringSlice("media")
	if len(files) == 0 {
		return nil, fmt.Errorf("at least one --media file is required")
	}
	for i, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		files[i] = abs
	}

	mediaType := queue.MediaType(c.String("type"))
	if mediaType == "" {
		mediaType = inferMediaType(files)
	}

	var scheduledAt *time.Time
	if at := c.String("at"); at != "" {
		ts, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("invalid --at time %q: %w", at, err)
		}
		scheduledAt = &ts
	}

	return ws.q.Add(&queue.PostItem{
		AccountID:   ws.cfg.Account,
		MediaType:   mediaType,
		FilePaths:   files,
		Caption:     c.String("caption"),
		Hashtags:    c.StringSlice("tag"),
		ScheduledAt: scheduledAt,
	})
}

// inferMediaType guesses the media type from the file list: multiple files
// are a carousel, a single video extension is a video, anything else a photo.
func inferMediaType(files []string) queue.MediaType {
	if len(files) > 1 {
		return queue.MediaCarousel
	}
	switch strings.ToLower(filepath.Ext(files[0])) {
	case ".mp4", ".mov", ".mkv", ".webm":
		return queue.MediaVideo
	}
	return queue.MediaPhoto
}

func runPost(c *cli.Context) error {
	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	item, err := addFromFlags(c, ws)
	if err != nil {
		return err
	}

	svc, err := scheduler.New(ws.cfg, ws.q, ws.st)
	if err != nil {
		return err
	}

	fmt.Printf("Posting %s (%d file(s))...\n", item.MediaType, len(item.FilePaths))
	if err := svc.PostNow(item.ID); err != nil {
		return err
	}
	fmt.Println("Posted")
	return nil
}

func runQueueAdd(c *cli.Context) error {
	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	item, err := addFromFlags(c, ws)
	if err != nil {
		return err
	}

	if item.ScheduledAt != nil {
		fmt.Printf("Queued post %d for %s\n", item.ID, item.ScheduledAt.Format(time.RFC3339))
	} else {
		fmt.Printf("Queued post %d\n", item.ID)
	}
	return nil
}

func runQueueList(c *cli.Context) error {
	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	items, err := ws.q.List(queue.ListFilter{
		AccountID: ws.cfg.Account,
		Status:    queue.PostStatus(c.String("status")),
	})
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Queue is empty")
		return nil
	}

	fmt.Printf("%-6s %-10s %-9s %-6s %-20s %s\n", "ID", "Status", "Type", "Files", "Scheduled", "Caption")
	for _, it := range items {
		sched := "-"
		if it.ScheduledAt != nil {
			sched = it.ScheduledAt.Local().Format("2006-01-02 15:04")
		}
		caption := it.Caption
		if len(caption) > 40 {
			caption = caption[:37] + "..."
		}
		fmt.Printf("%-6d %-10s %-9s %-6d %-20s %s\n",
			it.ID, it.Status, it.MediaType, len(it.FilePaths), sched, caption)
		if it.Status == queue.StatusFailed && it.ErrorMsg != "" {
			fmt.Printf("       %s\n", it.ErrorMsg)
		}
	}
	return nil
}

func runQueueRemove(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: autopost queue remove <post-id>")
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid post id %q", c.Args().First())
	}

	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	deleted, err := ws.q.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("post %d not found", id)
	}
	fmt.Printf("Removed post %d\n", id)
	return nil
}
