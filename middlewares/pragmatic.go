package middlewares

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PragmaticAuth verifies the md5 hash the vendor signs every form body with:
// hex(md5(sorted k=v pairs joined by & + secret)).
func PragmaticAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		args := c.Request().PostArgs()

		var keys []string
		params := make(map[string]string)
		args.VisitAll(func(k, v []byte) {
			key := string(k)
			if key == "hash" {
				return
			}
			keys = append(keys, key)
			params[key] = string(v)
		})
		sort.Strings(keys)

		var sb strings.Builder
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte('&')
			}
			fmt.Fprintf(&sb, "%s=%s", k, params[k])
		}
		sb.WriteString(secret)

		sum := md5.Sum([]byte(sb.String()))
		expected := hex.EncodeToString(sum[:])

		if c.FormValue("hash") != expected {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"error":       5,
				"description": "Invalid hash",
			})
		}

		return c.Next()
	}
}
