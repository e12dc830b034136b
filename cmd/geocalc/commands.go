package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/woozymasta/geodesy/internal/format"
	"github.com/woozymasta/geodesy/internal/geo"
	"github.com/woozymasta/geodesy/internal/geo/bearing"
	"github.com/woozymasta/geodesy/internal/geo/distance"
)

type pairArgs struct {
	From string `positional-arg-name:"FROM" description:"lat,lng"`
	To   string `positional-arg-name:"TO"   description:"lat,lng"`
}

type pointsArgs struct {
	Points []string `positional-arg-name:"POINTS" description:"lat,lng ..."`
}

// DistanceCommand prints the distance between two points.
type DistanceCommand struct {
	Model string   `short:"m" long:"model" description:"Distance model (haversine, vincenty), config default if empty"`
	Args  pairArgs `positional-args:"yes" required:"yes"`
}

// BearingCommand prints the initial and final bearing.
type BearingCommand struct {
	Model string   `short:"m" long:"model" description:"Bearing model (spherical, ellipsoidal), config default if empty"`
	Args  pairArgs `positional-args:"yes" required:"yes"`
}

// DestinationCommand solves the direct problem.
type DestinationCommand struct {
	Model    string  `short:"m" long:"model"    description:"Bearing model (spherical, ellipsoidal), config default if empty"`
	Bearing  float64 `short:"b" long:"bearing"  description:"Initial bearing in degrees" required:"true"`
	Distance float64 `short:"d" long:"distance" description:"Distance in meters" required:"true"`
	Args     struct {
		From string `positional-arg-name:"FROM" description:"lat,lng"`
	} `positional-args:"yes" required:"yes"`
}

// LengthCommand prints the length of a polyline.
type LengthCommand struct {
	Model string     `short:"m" long:"model" description:"Distance model (haversine, vincenty), config default if empty"`
	Args  pointsArgs `positional-args:"yes" required:"yes"`
}

// AreaCommand prints area and perimeter of a polygon.
type AreaCommand struct {
	Model string     `short:"m" long:"model" description:"Distance model for the perimeter, config default if empty"`
	Args  pointsArgs `positional-args:"yes" required:"yes"`
}

// ContainsCommand prints whether the polygon holds the point.
type ContainsCommand struct {
	Point string     `short:"p" long:"point" description:"Point to test (lat,lng)" required:"true"`
	Args  pointsArgs `positional-args:"yes" required:"yes"`
}

// FormatCommand prints a coordinate in one of the text notations or GeoJSON.
type FormatCommand struct {
	Style    string `short:"s" long:"style"    description:"Output notation" choice:"decimal" choice:"dm" choice:"dms" choice:"geojson" default:"dms"`
	Units    string `short:"u" long:"units"    description:"Unit glyphs" choice:"UTF-8" choice:"ASCII" default:"UTF-8"`
	Digits   int    `long:"digits"             description:"Decimal digits for decimal and dm styles" default:"-1"`
	Cardinal bool   `long:"cardinal"           description:"Use N/S/E/W letters instead of signs"`
	Args     struct {
		Point string `positional-arg-name:"POINT" description:"lat,lng"`
	} `positional-args:"yes" required:"yes"`
}

func (a *app) point(text string) (geo.Coordinate, error) {
	return format.ParseCoordinate(text, a.ellipsoid)
}

func (a *app) points(texts []string, minimum int) ([]geo.Coordinate, error) {
	if len(texts) < minimum {
		return nil, fmt.Errorf("need at least %d points, got %d", minimum, len(texts))
	}

	pts := make([]geo.Coordinate, 0, len(texts))
	for _, text := range texts {
		c, err := a.point(text)
		if err != nil {
			return nil, err
		}
		pts = append(pts, c)
	}

	return pts, nil
}

func (a *app) pair(args pairArgs) (geo.Coordinate, geo.Coordinate, error) {
	p1, err := a.point(args.From)
	if err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, err
	}
	p2, err := a.point(args.To)
	if err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, err
	}

	return p1, p2, nil
}

func (a *app) distanceCalculator(model string) (geo.DistanceCalculator, error) {
	if model == "" {
		model = a.config.Distance
	}
	return distance.ByName(model, a.config.Iterations.Distance)
}

func (a *app) bearingCalculator(model string) (geo.BearingCalculator, error) {
	if model == "" {
		model = a.config.Bearing
	}
	return bearing.ByName(model, a.config.Iterations.Bearing)
}

func formatMeters(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Execute implements flags.Commander.
func (c *DistanceCommand) Execute([]string) error {
	calc, err := env.distanceCalculator(c.Model)
	if err != nil {
		return err
	}
	p1, p2, err := env.pair(c.Args)
	if err != nil {
		return err
	}

	d, err := calc.Distance(p1, p2)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(env.out, formatMeters(d))
	return err
}

// Execute implements flags.Commander.
func (c *BearingCommand) Execute([]string) error {
	calc, err := env.bearingCalculator(c.Model)
	if err != nil {
		return err
	}
	p1, p2, err := env.pair(c.Args)
	if err != nil {
		return err
	}

	initial, err := calc.Bearing(p1, p2)
	if err != nil {
		return err
	}
	final, err := calc.FinalBearing(p1, p2)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(env.out, "initial %.7f\nfinal %.7f\n", initial, final)
	return err
}

// Execute implements flags.Commander.
func (c *DestinationCommand) Execute([]string) error {
	calc, err := env.bearingCalculator(c.Model)
	if err != nil {
		return err
	}
	from, err := env.point(c.Args.From)
	if err != nil {
		return err
	}

	dest, err := calc.Destination(from, c.Bearing, c.Distance)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(env.out, dest.Format(format.DecimalDegrees{Separator: ",", Digits: 9}))
	return err
}

// Execute implements flags.Commander.
func (c *LengthCommand) Execute([]string) error {
	calc, err := env.distanceCalculator(c.Model)
	if err != nil {
		return err
	}
	pts, err := env.points(c.Args.Points, 2)
	if err != nil {
		return err
	}

	length, err := geo.NewPolyline(pts...).Length(calc)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(env.out, formatMeters(length))
	return err
}

// Execute implements flags.Commander.
func (c *AreaCommand) Execute([]string) error {
	calc, err := env.distanceCalculator(c.Model)
	if err != nil {
		return err
	}
	pts, err := env.points(c.Args.Points, 3)
	if err != nil {
		return err
	}

	pg := geo.NewPolygon(pts...)
	perimeter, err := pg.Perimeter(calc)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(env.out, "area %.1f\nperimeter %s\n", pg.Area(), formatMeters(perimeter))
	return err
}

// Execute implements flags.Commander.
func (c *ContainsCommand) Execute([]string) error {
	pts, err := env.points(c.Args.Points, 3)
	if err != nil {
		return err
	}
	p, err := env.point(c.Point)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(env.out, geo.NewPolygon(pts...).Contains(p))
	return err
}

// Execute implements flags.Commander.
func (c *FormatCommand) Execute([]string) error {
	p, err := env.point(c.Args.Point)
	if err != nil {
		return err
	}

	if c.Style == "geojson" {
		doc, err := format.PointGeoJSON(p)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(env.out, string(doc))
		return err
	}

	units, err := format.ParseUnits(c.Units)
	if err != nil {
		return err
	}

	var f geo.CoordinateFormatter
	switch strings.ToLower(c.Style) {
	case "decimal":
		df := format.NewDecimalDegrees()
		if c.Digits >= 0 {
			df.Digits = c.Digits
		}
		f = df
	case "dm":
		df := format.NewDecimalMinutes()
		df.Units = units
		df.CardinalLetters = c.Cardinal
		if c.Digits >= 0 {
			df.Digits = c.Digits
		}
		f = df
	default:
		df := format.NewDMS()
		df.Units = units
		df.CardinalLetters = c.Cardinal
		f = df
	}

	_, err = fmt.Fprintln(env.out, p.Format(f))
	return err
}
