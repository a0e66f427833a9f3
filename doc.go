// Package hexbot requests colors from the Hexbot API and decodes the reply.
//
// Query parameters are validated when they are constructed, so a request
// that reaches the wire is always one the service accepts:
//
//	count, err := hexbot.NewCount(5)
//	size, err := hexbot.NewWidthHeight(500, 500)
//	seed, err := hexbot.NewSeed(0x8B0000, 0x8B008B)
//
//	client := hexbot.NewClient()
//	hb, err := client.Fetch(ctx, hexbot.Request{Count: count, Size: size, Seed: seed})
//	fmt.Println(hb) // [#8B0045-(12|401), #A1008B-(77|3), ...]
//
// Absent parameters (the zero values of [Count], [WidthHeight] and [Seed])
// are left out of the query string and the service applies its defaults.
//
// The HTTP transport is pluggable through [Transport]; retry and timeout
// policy belongs to the transport, not to this package.
package hexbot
