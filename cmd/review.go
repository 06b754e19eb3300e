package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"moviehub-cli/model"
	"moviehub-cli/validate"
)

var ratingLabels = []string{"5 - Excellent", "4 - Good", "3 - Average", "2 - Poor", "1 - Terrible"}

type reviewFlags struct {
	movieID int
	name    string
	rating  int
	text    string
}

func newReviewCmd(env *runtimeEnv) *cobra.Command {
	flags := &reviewFlags{}
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Post a review for a movie",
		Long:  `Posts a movie review. Fields not given as flags are asked for interactively.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := collectReview(*flags)
			if err != nil {
				return err
			}
			if err := validate.Check(validate.Review(req)); err != nil {
				return err
			}

			logger := stderrLogger(env.cfg, cmd.ErrOrStderr())
			client, closeClient := newClient(cmd.Context(), env.cfg, logger)
			defer closeClient()
			if err := client.AddReview(cmd.Context(), req); err != nil {
				if model.IsRejected(err) {
					return errors.New(model.UserMessage(err))
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Review submitted successfully")
			return nil
		},
	}
	cmd.Flags().IntVar(&flags.movieID, "movie", 0, "movie id")
	cmd.Flags().StringVar(&flags.name, "name", "", "your name")
	cmd.Flags().IntVar(&flags.rating, "rating", 0, "rating from 1 to 5")
	cmd.Flags().StringVar(&flags.text, "text", "", "review text")
	_ = cmd.MarkFlagRequired("movie")
	return cmd
}

func collectReview(flags reviewFlags) (model.ReviewRequest, error) {
	req := model.ReviewRequest{
		MovieId:      flags.movieID,
		CustomerName: strings.TrimSpace(flags.name),
		Rating:       flags.rating,
		ReviewText:   strings.TrimSpace(flags.text),
	}
	if req.MovieId <= 0 {
		return req, errors.Newf("invalid movie id %d", req.MovieId)
	}

	var err error
	if req.CustomerName == "" {
		if req.CustomerName, err = promptText("Your Name", validate.MsgNameRequired); err != nil {
			return req, err
		}
	}
	if req.Rating == 0 {
		if req.Rating, err = promptRating(); err != nil {
			return req, err
		}
	}
	if req.ReviewText == "" {
		if req.ReviewText, err = promptText("Your Review", validate.MsgReviewRequired); err != nil {
			return req, err
		}
	}
	return req, nil
}

func promptText(label string, requiredMsg string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New(requiredMsg)
			}
			return nil
		},
	}
	value, err := prompt.Run()
	if err != nil {
		return "", errors.Wrapf(err, "prompt %s", strings.ToLower(label))
	}
	return strings.TrimSpace(value), nil
}

func promptRating() (int, error) {
	sel := promptui.Select{
		Label: "Rating",
		Items: ratingLabels,
		Size:  len(ratingLabels),
	}
	_, choice, err := sel.Run()
	if err != nil {
		return 0, errors.Wrap(err, "prompt rating")
	}
	return strconv.Atoi(strings.SplitN(choice, " ", 2)[0])
}
