package cmd

import (
	"context"
	"flag"
	"fmt"

	"hnsync/internal/config"
)

func List(cfg config.Config, args []string) error {
	fset := flag.NewFlagSet("list", flag.ContinueOnError)
	var num int
	fset.IntVar(&num, "num", 0, "limit number of stories (0 = all)")
	if err := fset.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	repo, closeRepo, err := openRepo(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	stories, err := repo.ListLatest(ctx, num)
	if err != nil {
		return fmt.Errorf("could not list stories: %w", err)
	}

	if len(stories) == 0 {
		fmt.Println("No stories stored")
		return nil
	}

	ids := make([]int64, 0, len(stories))
	for _, s := range stories {
		ids = append(ids, s.ID)
	}
	votes, err := repo.VoteCounts(ctx, ids)
	if err != nil {
		return fmt.Errorf("could not load vote counts: %w", err)
	}

	fmt.Print("Stored stories\n\n")
	for i, s := range stories {
		v := votes[s.ID]
		fmt.Printf("%d. [%d] %s\n   URL: %s\n   By: %s | Score: %d | Submitted: %s | +%d/-%d\n\n",
			i+1,
			s.ID,
			s.Title,
			s.URL,
			s.Submitter,
			s.Score,
			s.SubmittedAt,
			v.Likes,
			v.Dislikes,
		)
	}
	return nil
}
