package stagelayout

import (
	"bytes"
	"context"
	"fmt"
)

// Document snapshots the current hall and every token in paint order.
func (e *Editor) Document() Document {
	return NewDocument(e.hall, e.canvas.Tokens())
}

// Save writes the current layout to the configured slot, replacing whatever
// was stored there.
func (e *Editor) Save(ctx context.Context) error {
	if e.store == nil {
		return ErrNoStore
	}
	data, err := EncodeDocument(e.Document())
	if err != nil {
		return err
	}
	if err := e.store.Set(ctx, e.slot, data); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	e.lastPersisted = data
	e.log.Info("layout saved", "slot", e.slot, "tokens", e.canvas.Len(), "hall", e.hall)
	e.status.show(savedMessage)
	return nil
}

// Load replaces the canvas with the layout stored in the configured slot.
// An empty or missing slot is not an error: Load reports false and changes
// nothing. A malformed document returns its decode error and also changes
// nothing.
func (e *Editor) Load(ctx context.Context) (bool, error) {
	if e.store == nil {
		return false, ErrNoStore
	}
	data, ok, err := e.store.Get(ctx, e.slot)
	if err != nil {
		return false, fmt.Errorf("load layout: %w", err)
	}
	if !ok || len(data) == 0 {
		e.log.Debug("no saved layout", "slot", e.slot)
		return false, nil
	}
	if err := e.applyData(data); err != nil {
		return false, err
	}
	e.log.Info("layout loaded", "slot", e.slot, "tokens", e.canvas.Len(), "hall", e.hall)
	return true, nil
}

func (e *Editor) applyData(data []byte) error {
	doc, err := DecodeDocument(data)
	if err != nil {
		return err
	}
	if err := e.ApplyDocument(doc); err != nil {
		return err
	}
	e.lastPersisted = data
	return nil
}

// ApplyDocument replaces the canvas with the tokens of doc and restores its
// hall. An empty hall keeps the current one. The selection is cleared.
func (e *Editor) ApplyDocument(doc Document) error {
	tokens, err := doc.Tokens()
	if err != nil {
		return fmt.Errorf("apply layout: %w", err)
	}
	if doc.Hall != "" {
		e.hall = doc.Hall
	}
	e.cancelDrag()
	e.selection.Clear()
	e.canvas.Clear()
	e.canvas.Insert(tokens...)
	return nil
}

// RequestReload asks the editor to reload its slot on the next Update. It
// never blocks and may be called from any goroutine; requests made before
// the next Update coalesce.
func (e *Editor) RequestReload() {
	select {
	case e.reloads <- struct{}{}:
	default:
	}
}

// drainReloads handles a pending reload request. Data identical to what the
// editor last saved or loaded is skipped, so the editor's own saves do not
// bounce back through a file watcher.
func (e *Editor) drainReloads() {
	select {
	case <-e.reloads:
	default:
		return
	}
	if e.store == nil {
		return
	}
	data, ok, err := e.store.Get(e.ctx, e.slot)
	if err != nil {
		e.log.Error("reload layout", "slot", e.slot, "err", err)
		return
	}
	if !ok || len(data) == 0 || bytes.Equal(data, e.lastPersisted) {
		return
	}
	if err := e.applyData(data); err != nil {
		e.log.Error("reload layout", "slot", e.slot, "err", err)
		return
	}
	e.log.Info("layout reloaded", "slot", e.slot, "tokens", e.canvas.Len())
	e.status.show(reloadedMessage)
}

// saveFromUI saves on behalf of a button or shortcut and reports failures on
// the status line.
func (e *Editor) saveFromUI() {
	if err := e.Save(e.ctx); err != nil {
		e.log.Error("save layout", "slot", e.slot, "err", err)
		e.status.show("保存に失敗しました")
	}
}

// loadFromUI is the load button.
func (e *Editor) loadFromUI() {
	ok, err := e.Load(e.ctx)
	switch {
	case err != nil:
		e.log.Error("load layout", "slot", e.slot, "err", err)
		e.status.show("読み込みに失敗しました")
	case !ok:
		e.status.show("保存された配置がありません")
	default:
		e.status.show(loadedMessage)
	}
}
