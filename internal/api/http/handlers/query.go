package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// timeLayout is how timestamps are rendered in list/detail responses.
const timeLayout = "2006-01-02 15:04:05"

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// pageWindow reads page/page_size query params into an offset/limit pair.
func pageWindow(c *fiber.Ctx) (offset, limit int) {
	page := parseIntQuery(c, "page", 1)
	pageSize := parseIntQuery(c, "page_size", 50)
	return (page - 1) * pageSize, pageSize
}
