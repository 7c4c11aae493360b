// Package tierank embeds the tierank relevance ranking engine in a Go
// program, without the HTTP service in front of it.
//
// Candidates of each content domain (movies, TV, podcasts, people, books,
// authors) are ranked against one query by tiered match rules; the first
// domain whose top hit is an exact match becomes the hero result. Topic
// aliases live in an in-process table or in Valkey/Redis sets.
//
//	client, _ := tierank.New(ctx, tierank.WithAliases(map[string][]string{
//	    "scifi": {"science_fiction"},
//	}))
//	defer client.Close()
//
//	res, _ := client.Rank(ctx, tierank.RankRequest{
//	    Query: "The Dark Knight",
//	    Candidates: map[tierank.Kind][]tierank.Document{
//	        tierank.KindMovie: movies,
//	        tierank.KindPerson: people,
//	    },
//	})
//	if res.Hero != nil {
//	    fmt.Println(res.Hero.Kind, res.Hero.Hit.Document["title"])
//	}
//
// Shared aliases go through Valkey instead:
//
//	client, _ := tierank.New(ctx, tierank.WithValkey("localhost:6379", ""))
//	_, _ = client.Aliases().Put(ctx, "ww2", "world war ii", "second world war")
package tierank
