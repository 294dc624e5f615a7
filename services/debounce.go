package services

import (
	"sync"
	"time"
)

// Debouncer สำหรับ live search: keystroke ใหม่ cancel งานเก่า
// generation counter ใช้แก้ race "response เก่ากลับมาช้าแล้วทับอันใหม่" —
// งานที่จะ commit ผลต้องเช็ค Latest(gen) ก่อนเสมอ (last query wins)
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	gen   uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule ยกเลิกงานที่ค้างอยู่แล้วตั้งงานใหม่ คืน generation ของงานนั้น
func (d *Debouncer) Schedule(fn func(gen uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { fn(gen) })
	return gen
}

// Latest: gen นี้ยังเป็นงานล่าสุดอยู่ไหม
func (d *Debouncer) Latest(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.gen
}

// Stop เรียกตอน teardown กันงานค้าง fire หลัง connection ปิด
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	// กันงานที่ fire ไปแล้วแต่ยังไม่เช็ค Latest
	d.gen++
}
