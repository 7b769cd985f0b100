// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slider keeps the home page hero rotation. Slides advance on a
// fixed interval unless paused; manual navigation is refused while a
// transition is in progress and restarts the autoplay countdown.
package slider

import (
	"sync"
	"time"
)

const (
	// DefaultInterval is the autoplay period.
	DefaultInterval = 6 * time.Second
	// DefaultTransition is how long navigation stays locked after a move.
	DefaultTransition = 500 * time.Millisecond
)

// Slide is one hero banner.
type Slide struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CTAText     string `json:"ctaText"`
	CTALink     string `json:"ctaLink"`
	Image       string `json:"image"`
	ImageMobile string `json:"imageMobile,omitempty"`
}

// DefaultSlides returns the built-in hero content.
func DefaultSlides() []Slide {
	return []Slide{
		{
			ID:          1,
			Title:       "Свет, который создает уют",
			Description: "Тысячи светильников для вашего дома. От классических люстр до современных трековых систем.",
			CTAText:     "Выбрать светильник",
			CTALink:     "/catalog",
			Image:       "/images/hero/cozy.jpg",
		},
		{
			ID:          2,
			Title:       "Комплексные решения для ваших проектов",
			Description: "Специальные условия, 3D-модели и персональный менеджер для дизайнеров и архитекторов.",
			CTAText:     "Стать партнером",
			CTALink:     "/professionals",
			Image:       "/images/hero/partners.jpg",
		},
		{
			ID:          3,
			Title:       "Освещение для бизнеса и городской среды",
			Description: "Проектирование, производство и монтаж архитектурной подсветки, уличного освещения и световых вывесок.",
			CTAText:     "Смотреть портфолио",
			CTALink:     "/projects",
			Image:       "/images/hero/city.jpg",
		},
		{
			ID:          4,
			Title:       "Воплотим вашу идею в свете",
			Description: "Изготовление авторских светильников и рекламных конструкций по индивидуальному проекту.",
			CTAText:     "Рассчитать проект",
			CTALink:     "/consultation",
			Image:       "/images/hero/custom.jpg",
		},
	}
}

// FromImages builds one slide per image URL. Text is borrowed from the
// default slide at the same position, with generic copy past the end.
func FromImages(urls []string) []Slide {
	defaults := DefaultSlides()
	slides := make([]Slide, 0, len(urls))
	for i, url := range urls {
		s := Slide{
			ID:          i + 1,
			Title:       "Светильники",
			Description: "Магазин светильников",
			CTAText:     "Смотреть каталог",
			CTALink:     "/catalog",
		}
		if i < len(defaults) {
			s = defaults[i]
		}
		s.Image = url
		s.ImageMobile = ""
		slides = append(slides, s)
	}
	return slides
}

// State is a snapshot of the rotation.
type State struct {
	Slides     []Slide `json:"slides"`
	Current    int     `json:"current"`
	Paused     bool    `json:"paused"`
	IntervalMs int64   `json:"interval_ms"`
}

// Rotator advances through slides. All methods are safe for concurrent use.
type Rotator struct {
	mu            sync.Mutex
	slides        []Slide
	current       int
	paused        bool
	running       bool
	transitioning bool
	interval      time.Duration
	transition    time.Duration
	autoplay      *time.Timer
	unlock        *time.Timer
}

// New creates a stopped Rotator. Zero durations select the defaults.
func New(slides []Slide, interval, transition time.Duration) *Rotator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if transition <= 0 {
		transition = DefaultTransition
	}
	return &Rotator{
		slides:     append([]Slide(nil), slides...),
		interval:   interval,
		transition: transition,
	}
}

// Start begins autoplay.
func (r *Rotator) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = true
	r.armLocked()
}

// Stop halts autoplay and releases timers.
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	if r.autoplay != nil {
		r.autoplay.Stop()
		r.autoplay = nil
	}
	if r.unlock != nil {
		r.unlock.Stop()
		r.unlock = nil
	}
	r.transitioning = false
}

// Next moves to the following slide, wrapping around. Returns false when
// navigation is locked or there is nothing to move to.
func (r *Rotator) Next() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.slides) == 0 {
		return false
	}
	return r.moveLocked((r.current + 1) % len(r.slides))
}

// Prev moves to the previous slide, wrapping around.
func (r *Rotator) Prev() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.slides) == 0 {
		return false
	}
	return r.moveLocked((r.current - 1 + len(r.slides)) % len(r.slides))
}

// GoTo jumps to slide i. Selecting the current slide or an index out of
// range is a no-op.
func (r *Rotator) GoTo(i int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.slides) || i == r.current {
		return false
	}
	return r.moveLocked(i)
}

// Pause suspends autoplay, as when the pointer rests on the banner.
func (r *Rotator) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = true
	if r.autoplay != nil {
		r.autoplay.Stop()
		r.autoplay = nil
	}
}

// Resume restarts autoplay with a full interval.
func (r *Rotator) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = false
	r.armLocked()
}

// Current returns the index of the visible slide.
func (r *Rotator) Current() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// SetSlides replaces the slide list, keeping the position when it is
// still in range.
func (r *Rotator) SetSlides(slides []Slide) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slides = append([]Slide(nil), slides...)
	if r.current >= len(r.slides) {
		r.current = 0
	}
}

// State returns a snapshot safe to encode.
func (r *Rotator) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State{
		Slides:     append([]Slide(nil), r.slides...),
		Current:    r.current,
		Paused:     r.paused,
		IntervalMs: r.interval.Milliseconds(),
	}
}

func (r *Rotator) moveLocked(to int) bool {
	if r.transitioning {
		return false
	}
	r.current = to
	r.transitioning = true
	if r.unlock != nil {
		r.unlock.Stop()
	}
	r.unlock = time.AfterFunc(r.transition, func() {
		r.mu.Lock()
		r.transitioning = false
		r.mu.Unlock()
	})
	r.armLocked()
	return true
}

// armLocked (re)starts the autoplay countdown when playing.
func (r *Rotator) armLocked() {
	if r.autoplay != nil {
		r.autoplay.Stop()
		r.autoplay = nil
	}
	if !r.running || r.paused || len(r.slides) < 2 {
		return
	}
	r.autoplay = time.AfterFunc(r.interval, r.tick)
}

func (r *Rotator) tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running || r.paused || len(r.slides) == 0 {
		return
	}
	if !r.moveLocked((r.current + 1) % len(r.slides)) {
		// Locked by a manual move; try again after a full interval.
		r.armLocked()
	}
}
