/*
Package subwaymapper finds the fastest route between two subway stops using
live GTFS-Realtime trip updates.

A Planner ties the pieces together: trip records from the realtime feed (or the
on-disk cache when the feed is down) and transfers from static GTFS are built
into a graph, and each query runs a shortest-path search over it.

	p, err := subwaymapper.Load(ctx, config.Config, gtfsrt.NewClient())
	if err != nil {
	    log.Fatal(err)
	}
	res := p.Route("A27N", "A41N")
	formatter.Text(os.Stdout, "A27N", "A41N", res, p.Names())

Planners are read-only once built, so one instance can serve concurrent
requests. To pick up newer feed data, load a new Planner.
*/
package subwaymapper
