package cmd

import (
	"context"
	"flag"
	"fmt"

	"hnsync/internal/config"
)

func Delete(cfg config.Config, args []string) error {
	fset := flag.NewFlagSet("delete", flag.ContinueOnError)
	var id int64
	fset.Int64Var(&id, "id", 0, "story id")
	if err := fset.Parse(args); err != nil {
		return err
	}

	if id <= 0 {
		return fmt.Errorf("--id is required")
	}

	ctx := context.Background()
	repo, closeRepo, err := openRepo(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	rows, err := repo.DeleteStory(ctx, id)
	if err != nil {
		return fmt.Errorf("could not delete story %d: %w", id, err)
	}

	if rows == 0 {
		return fmt.Errorf("story %d not found", id)
	}

	fmt.Printf("Story %d deleted successfully\n", id)
	return nil
}
