package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wangtaito/workout-project/internal/i18n"
	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/nutrition"
	"github.com/wangtaito/workout-project/internal/services"
)

const maxVegetables = 2

func newEstimateCommand() *cobra.Command {
	var (
		vegetables []string
		protein    string
		starch     string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the calories of a meal",
		Long: "Estimate the calories of a meal from up to two vegetables, one protein and one starch.\n" +
			"Each component is written as type[:portion[:cooking]], e.g. chicken:large or 雞肉:較多.",
		Example: "  coachctl estimate --vegetable spinach --protein chicken:large --starch rice:small",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(vegetables) > maxVegetables {
				return fmt.Errorf("at most %d vegetables are allowed", maxVegetables)
			}
			labels, err := i18n.NewBundledManager(i18n.LangEN)
			if err != nil {
				return err
			}

			var meal [2]models.MealComponent
			for index := range meal {
				raw := ""
				if index < len(vegetables) {
					raw = vegetables[index]
				}
				if meal[index], err = parseComponent(labels, "vegetable", raw); err != nil {
					return err
				}
			}
			proteinComponent, err := parseComponent(labels, "protein", protein)
			if err != nil {
				return err
			}
			starchComponent, err := parseComponent(labels, "starch", starch)
			if err != nil {
				return err
			}

			table, err := nutrition.BundledTable()
			if err != nil {
				return err
			}
			engine := nutrition.NewEngine(table, log.New(cmd.ErrOrStderr(), "estimate: ", 0))
			return writeEstimate(cmd.OutOrStdout(), engine.Estimate(meal, proteinComponent, starchComponent), asJSON)
		},
	}

	cmd.Flags().StringArrayVar(&vegetables, "vegetable", nil, "Vegetable component (repeat up to twice)")
	cmd.Flags().StringVar(&protein, "protein", "", "Protein component")
	cmd.Flags().StringVar(&starch, "starch", "", "Starch component")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the estimate as JSON")
	return cmd
}

// parseComponent reads type[:portion[:cooking]]. Localised labels are
// accepted for every part. An empty value is the "none" component.
func parseComponent(labels *i18n.Manager, group string, raw string) (models.MealComponent, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) > 3 {
		return models.MealComponent{}, fmt.Errorf("invalid %s %q", group, raw)
	}
	resolve := func(group string, value string) (string, error) {
		value = strings.TrimSpace(value)
		if value == "" {
			return "", nil
		}
		canonical, ok := labels.Canonical(group, value)
		if !ok {
			return "", fmt.Errorf("unknown %s %q", group, value)
		}
		return canonical, nil
	}

	component := models.MealComponent{
		CookingMethod: models.DefaultCookingMethod,
		Portion:       models.DefaultPortion,
	}
	foodType, err := resolve(group, parts[0])
	if err != nil {
		return models.MealComponent{}, err
	}
	component.FoodType = models.FoodType(foodType)
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		portion, err := resolve("portion", parts[1])
		if err != nil {
			return models.MealComponent{}, err
		}
		component.Portion = models.Portion(portion)
	}
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		method, err := resolve("cooking_method", parts[2])
		if err != nil {
			return models.MealComponent{}, err
		}
		component.CookingMethod = models.CookingMethod(method)
	}
	return services.NormalizeMealComponent(component), nil
}

func writeEstimate(out io.Writer, estimate nutrition.Estimate, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(estimate)
	}
	fmt.Fprintf(out, "Vegetables\t%.0f kcal\n", estimate.VegetablesCalories)
	fmt.Fprintf(out, "Protein\t%.0f kcal\n", estimate.ProteinCalories)
	fmt.Fprintf(out, "Starch\t%.0f kcal\n", estimate.StarchCalories)
	fmt.Fprintf(out, "Total\t%.0f kcal\n", estimate.TotalCalories)
	return nil
}
