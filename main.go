package main

import (
	"fmt"
	"time"

	"github.com/hollowdom/hollowdom/browser"
	"github.com/hollowdom/hollowdom/dom"
	"github.com/hollowdom/hollowdom/domdbg"
	"github.com/hollowdom/hollowdom/domxpath"
)

func main() {
	w := browser.Open(`<html><head><title>demo</title></head><body>
		<ul id="menu">
			<li class="item">alpha</li>
			<li class="item selected">beta</li>
		</ul>
	</body></html>`)
	defer w.Close()

	w.Loop.SetTimeout(func(...interface{}) {
		li := w.Document.CreateElement("li")
		li.ClassList().Add("item")
		li.SetTextContent("gamma")
		w.Document.GetElementByID("menu").AppendChild(li)
	}, 50*time.Millisecond)

	if n, err := w.WaitForSelector("li:nth-child(3)"); err == nil {
		n.AddEventListener("click", func(ev *dom.Event) {
			fmt.Println("clicked", ev.Target.TextContent())
		})
		w.Click(n)
	}

	res, err := domxpath.Evaluate("count(//li)", w.Document.Node, domxpath.Number)
	if err == nil {
		fmt.Printf("items: %.0f\n", res.NumberValue())
	}

	fmt.Print(domdbg.Sprint(w.Document.Body()))
}
