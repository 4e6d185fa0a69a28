/*
Package gtfs loads the static GTFS reference tables used around route search.

Only three tables are read:

  - stops.txt: stop names, coordinates and parent stations (for display)
  - routes.txt: route short/long names and colors
  - transfers.txt: walkable connections, turned into graph.TransferRecord

Load from a directory of .txt files, a local zip, or a URL:

	index, err := gtfs.LoadStaticFromPath(ctx, "data/")
	if err != nil {
	    log.Fatal(err)
	}
	g := graph.Build(trips, index.Transfers())

Or from raw zip bytes:

	index, err := gtfs.LoadStaticFromZipBytes(zipBytes)

An empty min_transfer_time means zero seconds. Tables missing from the source are
treated as empty.

Parse once at startup and keep the index in memory; it is safe for concurrent
read access once loaded.
*/
package gtfs
