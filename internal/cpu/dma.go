package cpu

// dmaKind distinguishes the two bus-steal sources, per spec.md §3.3.
type dmaKind int

const (
	dmaOAM dmaKind = iota
	dmaDMC
)

type dmaRequest struct {
	kind dmaKind
	page uint8  // OAM DMA: high byte of source (writes to $4014)
	addr uint16 // DMC DMA: exact source address
}

// dmaState models the RDY-halt/DMA bus-steal state machine of spec.md
// §4.3.3. OAM DMA is requested by the $4014 write handler via
// CPU.RequestOAMDMA; DMC DMA is requested by the APU via CPU.RequestDMCDMA
// when its sample buffer empties. Both run as an alternate CPU tick
// function that the Scheduler never distinguishes from a normal CPU Step.
type dmaState struct {
	pending *dmaRequest
	active  bool
	kind    dmaKind

	// OAM DMA: 256 get/put pairs from page*0x100+offset into $2004.
	oamPage   uint8
	oamOffset uint16
	aligning  bool
	latch     uint8
	onGet     bool

	// DMC DMA result, consumed by the APU's PopDMCByte on completion.
	dmcAddr    uint16
	dmcByte    uint8
	dmcPending bool
	dmcStage   int
}

// RequestOAMDMA arms an OAM DMA transfer from page*0x100. Installed by
// console wiring as the $4014 write handler.
func (c *CPU) RequestOAMDMA(page uint8) {
	c.dma.pending = &dmaRequest{kind: dmaOAM, page: page}
}

// RequestDMCDMA arms a single DMC sample-byte fetch from addr. The APU
// calls this when its DMC buffer empties and reads the result back via
// PopDMCByte on the cycle DMA completion is observed.
func (c *CPU) RequestDMCDMA(addr uint16) {
	c.dma.pending = &dmaRequest{kind: dmaDMC, addr: addr}
}

// PopDMCByte returns the byte fetched by the most recently completed DMC
// DMA and clears the pending-result flag.
func (c *CPU) PopDMCByte() (uint8, bool) {
	if !c.dma.dmcPending {
		return 0, false
	}
	c.dma.dmcPending = false
	return c.dma.dmcByte, true
}

func (c *CPU) tickDMA() {
	if !c.dma.active {
		c.beginDMA()
		return
	}
	switch c.dma.kind {
	case dmaOAM:
		c.tickOAMDMA()
	case dmaDMC:
		c.tickDMCDMA()
	}
}

func (c *CPU) beginDMA() {
	req := c.dma.pending
	c.dma.pending = nil
	c.dma.active = true
	c.dma.kind = req.kind
	switch req.kind {
	case dmaOAM:
		c.dma.oamPage = req.page
		c.dma.oamOffset = 0
		// Alignment: an extra idle cycle is inserted when DMA begins on an
		// odd CPU cycle (spec.md §8 property 6 / scenario S4).
		c.dma.aligning = c.Cycles%2 != 0
		c.dma.onGet = true
		c.Bus.Read(c.PC) // halt-cycle bus activity mirrors the CPU's own fetch
	case dmaDMC:
		c.dmcFetch(req.addr)
	}
}

func (c *CPU) tickOAMDMA() {
	if c.dma.aligning {
		c.dma.aligning = false
		return
	}
	if c.dma.onGet {
		addr := uint16(c.dma.oamPage)<<8 | c.dma.oamOffset
		c.dma.latch = c.Bus.Read(addr)
		c.dma.onGet = false
		return
	}
	c.Bus.Write(0x2004, c.dma.latch)
	c.dma.oamOffset++
	c.dma.onGet = true
	if c.dma.oamOffset == 256 {
		c.dma.active = false
	}
}

func (c *CPU) dmcFetch(addr uint16) {
	c.dma.dmcAddr = addr
}

func (c *CPU) tickDMCDMA() {
	// DMC DMA halts the CPU for up to 4 cycles (alignment + dummy + get);
	// this module charges a fixed 4-cycle cost (the beginDMA cycle, 2 halt
	// cycles here, then the fetch), a
	// simplification of the address/RMW-dependent 1-4 cycle range spec.md
	// §4.3.3 describes, noted here rather than silently diverging.
	if c.dma.dmcStage == 0 {
		c.dma.dmcStage = 1
		return
	}
	if c.dma.dmcStage == 1 {
		c.dma.dmcStage = 2
		return
	}
	c.dma.dmcByte = c.Bus.Read(c.dma.dmcAddr)
	c.dma.dmcPending = true
	c.dma.active = false
	c.dma.dmcStage = 0
}
