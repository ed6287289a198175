// Command healthcalc runs the BMI, calorie and diet calculators from the
// shell.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Ayash-Bera/medipredict/pkg/calculator"
)

const usage = `usage: healthcalc <command> [flags]

commands:
  bmi       -weight KG -height CM
  calories  -age N -gender male|female -weight KG -height CM -activity LEVEL
  diet      -age N -gender male|female -weight KG -height CM -activity LEVEL -goal loss|maintain|gain

activity levels: sedentary, light, moderate, active, intense
add -json to any command for machine-readable output`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("unknown or missing command")

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "bmi":
		return runBMI(args[1:], out)
	case "calories":
		return runCalories(args[1:], out)
	case "diet":
		return runDiet(args[1:], out)
	default:
		return fmt.Errorf("%w: %q", errUsage, args[0])
	}
}

func runBMI(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("bmi", flag.ContinueOnError)
	weight := fs.Float64("weight", 0, "weight in kg")
	height := fs.Float64("height", 0, "height in cm")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := calculator.BMI(*weight, *height)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(out, res)
	}

	fmt.Fprintf(out, "BMI: %.2f (%s)\n", res.BMI, res.Category)
	fmt.Fprintf(out, "Ideal weight: %.1f - %.1f kg\n", res.IdealMinKg, res.IdealMaxKg)
	fmt.Fprintf(out, "Advice: %s\n", res.Advice)
	return nil
}

type profileFlags struct {
	age      *int
	gender   *string
	weight   *float64
	height   *float64
	activity *string
	asJSON   *bool
}

func registerProfile(fs *flag.FlagSet) profileFlags {
	return profileFlags{
		age:      fs.Int("age", 0, "age in years"),
		gender:   fs.String("gender", "male", "male or female"),
		weight:   fs.Float64("weight", 0, "weight in kg"),
		height:   fs.Float64("height", 0, "height in cm"),
		activity: fs.String("activity", "sedentary", "activity level"),
		asJSON:   fs.Bool("json", false, "print JSON"),
	}
}

func (f profileFlags) profile() (calculator.Profile, error) {
	gender, err := calculator.ParseGender(*f.gender)
	if err != nil {
		return calculator.Profile{}, err
	}
	activity, err := calculator.ParseActivity(*f.activity)
	if err != nil {
		return calculator.Profile{}, err
	}
	p := calculator.Profile{
		Age:      *f.age,
		Gender:   gender,
		HeightCm: *f.height,
		WeightKg: *f.weight,
		Activity: activity,
	}
	return p, p.Validate()
}

func runCalories(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("calories", flag.ContinueOnError)
	pf := registerProfile(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := pf.profile()
	if err != nil {
		return err
	}
	res, err := calculator.Calories(p)
	if err != nil {
		return err
	}
	res = res.Rounded()
	if *pf.asJSON {
		return writeJSON(out, res)
	}

	fmt.Fprintf(out, "BMR: %.0f kcal\n", res.BMR)
	fmt.Fprintf(out, "TDEE: %.0f kcal\n", res.TDEE)
	fmt.Fprintf(out, "Maintain: %.0f kcal/day\n", res.Maintain)
	fmt.Fprintf(out, "Weight loss: %.0f kcal/day\n", res.Loss)
	fmt.Fprintf(out, "Weight gain: %.0f kcal/day\n", res.Gain)
	fmt.Fprintf(out, "Protein: %.0f g/day\n", res.ProteinG)
	fmt.Fprintf(out, "Fats: %.0f g/day\n", res.FatG)
	fmt.Fprintf(out, "Carbs: %.0f g/day\n", res.CarbsG)
	return nil
}

func runDiet(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("diet", flag.ContinueOnError)
	pf := registerProfile(fs)
	goalFlag := fs.String("goal", "maintain", "loss, maintain or gain")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := pf.profile()
	if err != nil {
		return err
	}
	goal, err := calculator.ParseGoal(*goalFlag)
	if err != nil {
		return err
	}
	plan, err := calculator.Diet(p, goal)
	if err != nil {
		return err
	}
	plan.BMR = math.Round(plan.BMR)
	plan.TDEE = math.Round(plan.TDEE)
	plan.Calories = math.Round(plan.Calories)
	if *pf.asJSON {
		return writeJSON(out, plan)
	}

	fmt.Fprintf(out, "Goal: %s\n", plan.Goal)
	fmt.Fprintf(out, "BMR: %.0f kcal, TDEE: %.0f kcal\n", plan.BMR, plan.TDEE)
	fmt.Fprintf(out, "Daily target: %.0f kcal\n\n", plan.Calories)
	fmt.Fprintf(out, "Breakfast: %s\n", plan.Meals.Breakfast)
	fmt.Fprintf(out, "Lunch: %s\n", plan.Meals.Lunch)
	fmt.Fprintf(out, "Dinner: %s\n", plan.Meals.Dinner)
	fmt.Fprintf(out, "Snacks: %s\n", plan.Meals.Snacks)
	fmt.Fprintf(out, "Hydration: %s\n", plan.Meals.Hydration)
	fmt.Fprintf(out, "Tips: %s\n", plan.Meals.Tips)
	return nil
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
