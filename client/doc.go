// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is a Go client for the songmood HTTP API.

A participant session wires one Client into the annotation state machine:

	c := client.New("http://localhost:5001")
	tax, _ := annotation.LoadTaxonomy(ctx, c)
	sel, err := annotation.NewSelection(tax)
	if err != nil {
		return err
	}
	session := annotation.NewSession(sel, c)
	go annotation.NewPoller(c, session, annotation.WithRefreshOnSubmit()).Run(ctx)

WithRefreshOnSubmit re-reads the current song as soon as a submit returns,
so an advance made by that submit unlocks the form without waiting for the
next tick.

Every failure, whether in transport or a non-2xx answer, is returned as a
*ConnectivityError. Use errors.As to read the status code.
*/
package client
