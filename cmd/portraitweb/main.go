// portraitweb serves character portraits over HTTP, cropping them from the
// atlas assets on demand instead of extracting everything up front.
//
// Routes:
//
//	/                        index of loaded portraits
//	/portrait/{name}.png     one portrait, PNG
//	/portrait/{name}.webp    one portrait, lossless WEBP
package main

import (
	"flag"
	"fmt"
	"html"
	"image"
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"badc0de.net/pkg/go-portraits/crop"
	"badc0de.net/pkg/go-portraits/hub"
	"badc0de.net/pkg/go-portraits/store"
)

var (
	inputPath     = flag.String("input", "", "path to the asset folder or zip package")
	listenAddress = flag.String("listen_address", ":8080", "http listen address for portraitweb")
)

type location struct {
	atlas  int
	sprite hub.SpriteRecord
}

type server struct {
	st      store.Store
	hub     *hub.PortraitHub
	sprites map[string]location

	mu      sync.Mutex
	atlases map[int]*image.NRGBA
}

func newServer(st store.Store, h *hub.PortraitHub) *server {
	s := &server{
		st:      st,
		hub:     h,
		sprites: make(map[string]location, h.LoadedSpriteCount),
		atlases: make(map[int]*image.NRGBA),
	}
	for i := range h.Atlases {
		for _, sp := range h.Atlases[i].Sprites {
			s.sprites[sp.Name] = location{atlas: i, sprite: sp}
		}
	}
	return s
}

// compositedAtlas returns the composite surface for descriptor idx, building
// it on first use. One cached surface per atlas; a page full of portraits
// from the same atlas composites it once.
func (s *server) compositedAtlas(idx int) (*image.NRGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if img, ok := s.atlases[idx]; ok {
		return img, nil
	}

	desc := &s.hub.Atlases[idx]
	tex, err := s.st.Surface(desc.TextureName)
	if err != nil {
		return nil, err
	}
	alpha, err := s.st.Surface(desc.AlphaName)
	if err != nil {
		return nil, err
	}
	img := crop.Composite(tex, alpha)
	s.atlases[idx] = img
	return img, nil
}

func (s *server) portraitHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	format, err := crop.ParseFormat(vars["ext"])
	if err != nil {
		http.Error(w, "unsupported image format", http.StatusBadRequest)
		return
	}
	loc, ok := s.sprites[vars["name"]]
	if !ok {
		http.Error(w, "no such portrait", http.StatusNotFound)
		return
	}

	atlas, err := s.compositedAtlas(loc.atlas)
	if err != nil {
		glog.Errorf("compositing atlas for %q: %v", vars["name"], err)
		http.Error(w, "failed to load atlas images", http.StatusInternalServerError)
		return
	}

	portrait := crop.ExtractSprite(atlas, loc.sprite, s.hub.SpriteSize)
	w.Header().Set("Content-Type", "image/"+format.Ext())
	w.WriteHeader(http.StatusOK)
	if err := format.Encode(w, portrait); err != nil {
		glog.Errorf("encoding %q: %v", vars["name"], err)
	}
}

func (s *server) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!doctype html><title>portraits</title><h1>%d portraits</h1><ul>",
		s.hub.LoadedSpriteCount)
	for i := range s.hub.Atlases {
		for _, sp := range s.hub.Atlases[i].Sprites {
			fmt.Fprintf(w, `<li><a href="/portrait/%s.png">%s</a></li>`,
				url.PathEscape(sp.Name), html.EscapeString(sp.Name))
		}
	}
	fmt.Fprint(w, "</ul>")
}

func main() {
	flag.Set("logtostderr", "true")
	flag.Parse()

	if *inputPath == "" {
		glog.Exit("no input path; pass the asset folder or zip package with -input")
	}
	st, err := store.Open(*inputPath)
	if err != nil {
		glog.Exit(err)
	}
	h, err := hub.Build(st)
	if err != nil {
		glog.Exit(err)
	}

	s := newServer(st, h)
	r := mux.NewRouter()
	r.HandleFunc("/", s.indexHandler)
	r.HandleFunc("/portrait/{name}.{ext:png|webp}", s.portraitHandler)

	glog.Infof("portraitweb listening on %s", *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, handlers.CombinedLoggingHandler(os.Stderr, r)))
}
