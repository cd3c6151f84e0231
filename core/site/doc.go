// Package site is the entry point: a facade composing the snapshot cache,
// the resolution chain, the translation pipeline, durable state and the
// signal bus behind the small surface page components consume.
//
//	svc, err := site.NewFromEnv(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer svc.Close()
//	go svc.Run(ctx)
//
//	about := svc.Page("about")
//	title := about.Text(content.ByKey("TITLE"), "Haqqımızda")
//	hero := about.Image(content.ByKey("HERO"), "/img/default.jpg")
//
// Components subscribe to the facade's bus and re-resolve on any signal:
// translations landing, the language switching, or the snapshot being
// replaced after an admin edit.
package site
