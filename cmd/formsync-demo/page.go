package main

// demoPage is the single demo document. The inline script mirrors the
// thin-client side of the protocol: it reports the browser URL on load
// and on history navigation, applies url_replace frames with
// history.replaceState, and posts field edits to /set.
const demoPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>formsync demo</title>
  <style>
    body { font-family: sans-serif; max-width: 32rem; margin: 3rem auto; }
    label { display: block; margin: 0.75rem 0 0.25rem; }
    input, select { width: 100%; padding: 0.4rem; box-sizing: border-box; }
    .note { color: #666; font-size: 0.85rem; margin-top: 1.5rem; }
  </style>
</head>
<body>
  <h1>formsync demo</h1>
  <p>Edit the form and watch the URL. Reload or share the URL and the
  form hydrates from it. The password field is excluded and never
  reaches the URL.</p>

  <label for="name">Name</label>
  <input id="name" data-field="name" type="text">

  <label for="category">Category</label>
  <select id="category" data-field="category">
    <option value="all">all</option>
    <option value="tech">tech</option>
    <option value="books">books</option>
  </select>

  <label for="inStock">In stock only</label>
  <input id="inStock" data-field="inStock" type="checkbox">

  <label for="page">Page</label>
  <input id="page" data-field="page" type="number" min="1">

  <label for="password">Password (excluded)</label>
  <input id="password" data-field="password" type="password">

  <p class="note">Metrics: <a href="/metrics">/metrics</a></p>

  <script>
    const proto = location.protocol === "https:" ? "wss:" : "ws:";
    const ws = new WebSocket(proto + "//" + location.host + "/ws");

    function reportURL() {
      ws.send(JSON.stringify({type: "url", query: location.search.slice(1)}));
    }

    ws.onopen = () => {
      reportURL();
      refreshForm();
    };
    window.addEventListener("popstate", () => {
      if (ws.readyState === WebSocket.OPEN) reportURL();
    });

    ws.onmessage = (ev) => {
      const frame = JSON.parse(ev.data);
      if (frame.type === "url_replace") {
        const next = frame.query ? "?" + frame.query : location.pathname;
        history.replaceState(null, "", next);
      }
    };

    async function refreshForm() {
      const values = await (await fetch("/values")).json();
      for (const el of document.querySelectorAll("[data-field]")) {
        const v = values[el.dataset.field];
        if (v === undefined) continue;
        if (el.type === "checkbox") el.checked = !!v;
        else el.value = v;
      }
    }

    for (const el of document.querySelectorAll("[data-field]")) {
      el.addEventListener("input", () => {
        const value = el.type === "checkbox" ? String(el.checked) : el.value;
        fetch("/set?field=" + encodeURIComponent(el.dataset.field) +
              "&value=" + encodeURIComponent(value), {method: "POST"});
      });
    }
  </script>
</body>
</html>
`
