package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/wangtaito/workout-project/internal/app"
	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/services"
)

func newVideosCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Browse and curate the exercise video catalog",
	}
	cmd.AddCommand(newVideosListCommand(opts), newVideosAddCommand(opts), newVideosCategoriesCommand(opts))
	return cmd
}

func newVideosListCommand(opts *rootOptions) *cobra.Command {
	var search, category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List videos, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(runtime *app.Runtime) error {
				writeVideos(cmd.OutOrStdout(), runtime.Services.Videos.Search(search, category))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Match title or description, case-insensitive")
	cmd.Flags().StringVar(&category, "category", services.VideoCategoryAll, "Category to show")
	return cmd
}

func newVideosAddCommand(opts *rootOptions) *cobra.Command {
	input := services.VideoInput{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a video to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(runtime *app.Runtime) error {
				video, err := runtime.Services.Videos.AddVideo(input)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added video %s\n", video.ID)
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&input.Title, "title", "", "Video title (required)")
	flags.StringVar(&input.Description, "description", "", "Short description (required)")
	flags.StringVar(&input.VideoURL, "url", "", "Video URL (required)")
	flags.StringVar(&input.ThumbnailURL, "thumbnail", "", "Thumbnail URL, derived for YouTube links")
	flags.StringVar(&input.Duration, "duration", "", "Length as MM:SS (required)")
	flags.StringVar(&input.Category, "category", "", "Category")
	flags.StringVar(&input.Level, "level", "", "Difficulty level")
	return cmd
}

func newVideosCategoriesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List video categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(runtime *app.Runtime) error {
				for _, category := range runtime.Services.Videos.Categories() {
					fmt.Fprintln(cmd.OutOrStdout(), category)
				}
				return nil
			})
		},
	}
}

func writeVideos(out io.Writer, videos []models.ExerciseVideo) {
	fmt.Fprintln(out, "ID\tTITLE\tCATEGORY\tLEVEL\tDURATION\tURL")
	for _, video := range videos {
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%s\n", video.ID, video.Title, video.Category, video.Level, video.Duration, video.VideoURL)
	}
}
