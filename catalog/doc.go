// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog loads the static content of a listening session.

The songs file is a JSON array:

	[{"id": 101, "title": "Gel", "url": "https://..."}, ...]

The taxonomy file has the shape served by GET /api/taxonomy. When it is
missing or invalid the tree bundled with package annotation is used.

Catalog.State maps a stored queue position to the pointer returned by the
song endpoints, clamping it into the current queue length.
*/
package catalog
