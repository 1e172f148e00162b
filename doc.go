// Package madde searches Turkish legislation documents article by article.
//
// A document is Markdown in which each article starts with a bold marker
// such as "**MADDE 12 –**". Engine loads documents from disk or base64 HTML
// payloads, caches their Markdown form, splits them into articles and
// evaluates keyword queries with quoted phrases and AND, OR and NOT against
// every article.
//
//	engine, err := madde.NewEngine(config.NewConfig(config.WithMaxResults(10)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	doc, err := engine.LoadFile(ctx, "6362.md")
//	result := engine.Search(doc.ID, doc.Content, `"mali sıkıntı" AND tazmin`, 0)
//	fmt.Println(search.FormatResults(result))
package madde
