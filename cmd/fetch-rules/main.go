// fetch-rules downloads a rule or fact file from a URL. Plain-text
// responses are written as-is; HTML responses (rule listings published on
// a web page) have the text of their <pre> and <code> blocks extracted.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/net/html"
)

func main() {
	url := flag.String("url", "", "source URL (required)")
	out := flag.String("out", "", "output file (required)")
	flag.Parse()

	if *url == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	body, contentType, err := fetch(*url)
	if err != nil {
		log.Fatal("Fetch failed: ", err)
	}

	text := body
	if strings.Contains(contentType, "text/html") {
		text = extractPreformatted(body)
		if text == "" {
			log.Fatal("No <pre> or <code> content found in HTML response")
		}
	}

	if err := os.WriteFile(*out, []byte(text), 0644); err != nil {
		log.Fatal("Write failed: ", err)
	}
	log.Printf("Wrote %d bytes to %s", len(text), *out)
}

func fetch(url string) (body, contentType string, err error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}
	return string(data), resp.Header.Get("Content-Type"), nil
}

// extractPreformatted concatenates the text of all <pre> and <code>
// blocks, one block per line group.
func extractPreformatted(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		// Fallback: treat the body as plain text
		return src
	}

	var blocks []string
	var walk func(*html.Node, bool)
	walk = func(n *html.Node, inBlock bool) {
		if n.Type == html.ElementNode && (n.Data == "pre" || n.Data == "code") {
			if !inBlock {
				var buf strings.Builder
				collectText(n, &buf)
				if text := strings.TrimSpace(buf.String()); text != "" {
					blocks = append(blocks, text)
				}
			}
			inBlock = true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inBlock)
		}
	}
	walk(doc, false)

	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n") + "\n"
}

func collectText(n *html.Node, buf *strings.Builder) {
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, buf)
	}
}
