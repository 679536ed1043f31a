package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"finance-tracker/internal/calendar"

	"github.com/labstack/echo/v4"
)

// epoch is the default lower bound of a transaction listing.
var epoch = calendar.NewDate(1970, 1, 1)

// getDateParam parses a YYYY-MM-DD query parameter, falling back to
// defaultValue when the parameter is absent or blank.
func getDateParam(c echo.Context, name string, defaultValue calendar.Date) (calendar.Date, error) {
	param := strings.TrimSpace(c.QueryParam(name))
	if param == "" {
		return defaultValue, nil
	}

	date, err := calendar.Parse(param)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("%s: %w", name, err)
	}
	return date, nil
}

// getRequiredIntParam parses a mandatory integer query parameter
func getRequiredIntParam(c echo.Context, name string) (int, error) {
	param := strings.TrimSpace(c.QueryParam(name))
	if param == "" {
		return 0, fmt.Errorf("%s: is required", name)
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("%s: must be an integer", name)
	}
	return value, nil
}

func getIntParam(c echo.Context, name string, defaultValue int) (int, error) {
	if strings.TrimSpace(c.QueryParam(name)) == "" {
		return defaultValue, nil
	}
	return getRequiredIntParam(c, name)
}
