// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package admin composes the administrator view from the server's admin reads.

LoadDashboard issues the reads in parallel and joins the per-song rollups
with song titles:

	c := client.New("http://localhost:5001", client.WithAdminKey(key))
	d, err := admin.LoadDashboard(ctx, c, "songs.json", 0)
	for _, row := range d.BySong {
		fmt.Println(row.SongIndex, row.Title, row.TotalRows)
	}

	view := admin.SongSummary(d.Summary, d.Songs, models.StringID("3"))

Songs without a title show as "Sarki Adi". The song list falls back to a
static songs file when the server does not answer.
*/
package admin
